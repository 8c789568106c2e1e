package models

import "time"

type BankSlipStatus string

const (
	BankSlipStatusPending  BankSlipStatus = "Pending"
	BankSlipStatusApproved BankSlipStatus = "Approved"
	BankSlipStatusRejected BankSlipStatus = "Rejected"
)

// BankSlip is manual payment evidence, reviewed by an admin. Approving it is
// an administrative step; the linked order is not touched automatically.
type BankSlip struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	OrderRef   string         `gorm:"index" json:"order_ref"`
	FilePath   string         `gorm:"not null" json:"file_path"`
	UploadedAt time.Time      `json:"uploaded_at"`
	Status     BankSlipStatus `gorm:"type:VARCHAR(10);default:'Pending'" json:"status"`
}
