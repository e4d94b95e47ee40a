package usecase

import "app/internal/domain/model"

// AuthContextは認証済みリクエストの主体。
// ミドルウェアで作って各操作に明示的に渡す（リクエスト状態に隠さない）。
type AuthContext struct {
	UserID        int64
	Role          model.Role
	Authenticated bool
}

func (a AuthContext) IsAdmin() bool {
	return a.Authenticated && a.Role == model.RoleAdmin
}

// Ownsは注文の所有者かどうか。ゲスト注文（UserIDなし）は誰も所有しない。
func (a AuthContext) Owns(o model.Order) bool {
	return a.Authenticated && o.UserID != nil && *o.UserID == a.UserID
}
