package model

import "time"

// 注文ステータス更新、在庫戻しなど。
type AuditAction string

const (
	//管理者が通常遷移で注文を進めた操作。
	AuditActionOrderTransition AuditAction = "ORDER_TRANSITION"
	//管理者が遷移表を無視して強制上書きした操作。
	AuditActionOverrideOrderStatus AuditAction = "OVERRIDE_ORDER_STATUS"
	//ゲートウェイ通知による自動遷移。
	AuditActionReconcilePayment AuditAction = "RECONCILE_PAYMENT"
	//期限切れ注文の自動キャンセル。
	AuditActionSweepExpired AuditAction = "SWEEP_EXPIRED"
)

// 何に対する操作か
type AuditResourceType string

const (
	//注文に対する操作。
	AuditResourceOrder AuditResourceType = "order"

	//商品（在庫）に対する操作。
	AuditResourceProduct AuditResourceType = "product"
)

// 監査ログ（管理者操作・自動遷移のログ）。
// 「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	//IDは監査ログの主キー
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID。システム起点（webhook/sweep）は0。
	ActorUserID int64 `gorm:"not null;index" json:"actor_user_id"`

	//Actionは操作の種類。
	Action AuditAction `gorm:"type:varchar(50);not null;index" json:"action"`

	//対象の種類（order / product）。
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`

	//対象のID。
	ResourceID int64 `gorm:"not null;index" json:"resource_id"`

	//JSON文字列で保存する。
	BeforeJSON string `gorm:"type:text" json:"before_json"`

	//JSON文字列で保存する。
	AfterJSON string `gorm:"type:text" json:"after_json"`

	//作成時刻
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
