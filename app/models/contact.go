package models

import "gorm.io/gorm"

// ContactMessage is an inquiry submitted through the contact form.
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:255;not null"       json:"name"`
	Email   string `gorm:"size:255;not null;index" json:"email"`
	Company string `gorm:"size:255"                json:"company"`
	Subject string `gorm:"size:255"                json:"subject"`
	Message string `gorm:"type:text;not null"      json:"message"`
	Handled bool   `gorm:"not null;default:false"  json:"handled"`
}
