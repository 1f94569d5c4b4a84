// Package domain defines the persistence models for settings, products, and
// message logs. These types are mapped with GORM and form the core data layer
// of the WhatsApp assistant backend. Column names follow the original store
// schema so existing dashboards keep working against the same tables.
package domain

import "time"

// Settings is the singleton configuration record read once per inbound
// message. It is mutated only by the administrative surface; the pipeline
// treats it as read-only.
//
// Fields:
//   - AIName: display name the assistant uses in replies.
//   - AIEnabled: master switch; when false the pipeline silently drops messages.
//   - OpenRouterKey / OpenRouterModel: chat-completion credentials and model id.
//   - EvolutionToken / InstanceID: messaging-platform bearer token and session id.
//   - ScaleStatus / WebhookURL: peripheral status fields kept for the admin UI;
//     the pipeline never reads them.
type Settings struct {
	ID              uint      `json:"id"               gorm:"primaryKey"`
	AIName          string    `json:"nome_ia"          gorm:"column:nome_ia;type:varchar(100);not null;default:'Assistente'"`
	AIEnabled       bool      `json:"ia_ativa"         gorm:"column:ia_ativa;not null;default:false"`
	OpenRouterKey   string    `json:"openrouter_api"   gorm:"column:openrouter_api;type:text"`
	OpenRouterModel string    `json:"openrouter_model" gorm:"column:openrouter_model;type:varchar(120)"`
	EvolutionToken  string    `json:"evolution_token"  gorm:"column:evolution_token;type:text"`
	InstanceID      string    `json:"instancia_id"     gorm:"column:instancia_id;type:varchar(120)"`
	ScaleStatus     string    `json:"status_balanca"   gorm:"column:status_balanca;type:varchar(40)"`
	WebhookURL      string    `json:"webhook_url"      gorm:"column:webhook_url;type:text"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for Settings.
func (Settings) TableName() string { return "settings" }

// Product is a catalog row for a repair part. Created/edited/deleted via the
// admin surface only; read-only to the pipeline.
//
// Invariant: Quantity >= 0 (enforced by a DB check constraint).
type Product struct {
	ID          string    `json:"id"              gorm:"type:char(36);primaryKey"`
	Name        string    `json:"nome"            gorm:"column:nome;type:varchar(255);not null"`
	DeviceModel string    `json:"modelo_aparelho" gorm:"column:modelo_aparelho;type:varchar(255);not null;index"`
	Description string    `json:"descricao"       gorm:"column:descricao;type:text"`
	Price       float64   `json:"preco"           gorm:"column:preco;type:decimal(10,2);not null"`
	Quantity    int       `json:"quantidade"      gorm:"column:quantidade;not null;default:0;check:quantidade >= 0"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName returns the database table name for Product.
func (Product) TableName() string { return "produtos" }

// MessageLog records one processed inbound message. Append-only: the pipeline
// never updates or deletes rows. Response is nil when no reply was sent or
// the transport send failed.
type MessageLog struct {
	ID        string    `json:"id"              gorm:"type:char(36);primaryKey"`
	UserPhone string    `json:"numero_usuario"  gorm:"column:numero_usuario;type:varchar(32);not null;index"`
	Message   string    `json:"mensagem_usuario" gorm:"column:mensagem_usuario;type:text;not null"`
	Response  *string   `json:"resposta_ia"     gorm:"column:resposta_ia;type:text"`
	Timestamp time.Time `json:"timestamp"       gorm:"column:timestamp;not null;autoCreateTime;index"`
}

// TableName returns the database table name for MessageLog.
func (MessageLog) TableName() string { return "logs_mensagens" }
