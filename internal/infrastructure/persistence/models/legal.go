package models

import (
	"encoding/json"
	"fmt"

	"github.com/esquire/backend/internal/domain/legal"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClientModel is the persistence model for the Client domain entity
type ClientModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(200);not null"`
	Email   string    `gorm:"type:varchar(200)"`
	Phone   string    `gorm:"type:varchar(50)"`
	Address string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity
func (m *ClientModel) ToDomain() *legal.Client {
	return &legal.Client{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Address:    m.Address,
	}
}

// FromDomain populates the persistence model from a domain Client entity
func (m *ClientModel) FromDomain(c *legal.Client) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.UserID = c.UserID
	m.Name = c.Name
	m.Email = c.Email
	m.Phone = c.Phone
	m.Address = c.Address
}

// CaseNoteModel is the persistence model for the CaseNote domain entity
type CaseNoteModel struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (CaseNoteModel) TableName() string {
	return "case_notes"
}

// ToDomain converts the persistence model to a domain CaseNote entity
func (m *CaseNoteModel) ToDomain() *legal.CaseNote {
	return &legal.CaseNote{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		Content:    m.Content,
	}
}

// FromDomain populates the persistence model from a domain CaseNote entity
func (m *CaseNoteModel) FromDomain(n *legal.CaseNote) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.UserID = n.UserID
	m.Content = n.Content
}

// CaseLawModel is the persistence model for the CaseLaw corpus entity
type CaseLawModel struct {
	BaseModel
	CaseName     string         `gorm:"type:varchar(300);not null"`
	Citation     string         `gorm:"type:varchar(100);not null;uniqueIndex"`
	Year         int            `gorm:"not null;index"`
	Court        string         `gorm:"type:varchar(200)"`
	Jurisdiction string         `gorm:"type:varchar(100);index"`
	Category     string         `gorm:"type:varchar(200)"`
	Summary      string         `gorm:"type:text"`
	RelevantText string         `gorm:"type:text"`
	Keywords     pq.StringArray `gorm:"type:text[]"`
}

// TableName returns the table name for GORM
func (CaseLawModel) TableName() string {
	return "case_laws"
}

// ToDomain converts the persistence model to a domain CaseLaw entity
func (m *CaseLawModel) ToDomain() *legal.CaseLaw {
	return &legal.CaseLaw{
		BaseEntity:   m.BaseModel.ToDomain(),
		CaseName:     m.CaseName,
		Citation:     m.Citation,
		Year:         m.Year,
		Court:        m.Court,
		Jurisdiction: m.Jurisdiction,
		Category:     m.Category,
		Summary:      m.Summary,
		RelevantText: m.RelevantText,
		Keywords:     []string(m.Keywords),
	}
}

// FromDomain populates the persistence model from a domain CaseLaw entity
func (m *CaseLawModel) FromDomain(cl *legal.CaseLaw) {
	m.FromDomainBaseEntity(cl.BaseEntity)
	m.CaseName = cl.CaseName
	m.Citation = cl.Citation
	m.Year = cl.Year
	m.Court = cl.Court
	m.Jurisdiction = cl.Jurisdiction
	m.Category = cl.Category
	m.Summary = cl.Summary
	m.RelevantText = cl.RelevantText
	m.Keywords = pq.StringArray(cl.Keywords)
}

// AnalysisModel is the persistence model for the DocumentAnalysis entity.
// Finding lists are stored as jsonb columns.
type AnalysisModel struct {
	BaseModel
	UserID       uuid.UUID            `gorm:"type:uuid;not null;index"`
	ClientID     *uuid.UUID           `gorm:"type:uuid;index"`
	Title        string               `gorm:"type:varchar(300);not null"`
	DocumentType string               `gorm:"type:varchar(100);not null"`
	DocumentURL  string               `gorm:"type:text"`
	DocumentText string               `gorm:"type:text"`
	Status       legal.AnalysisStatus `gorm:"type:varchar(20);not null;default:'pending';index"`

	Inconsistencies      []byte `gorm:"type:jsonb"`
	ConstitutionalIssues []byte `gorm:"type:jsonb"`
	LegalArguments       []byte `gorm:"type:jsonb"`
	SuggestedCaseLaws    []byte `gorm:"type:jsonb"`
	Summary              string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AnalysisModel) TableName() string {
	return "document_analyses"
}

// ToDomain converts the persistence model to a domain DocumentAnalysis entity
func (m *AnalysisModel) ToDomain() (*legal.DocumentAnalysis, error) {
	a := &legal.DocumentAnalysis{
		BaseEntity:   m.BaseModel.ToDomain(),
		UserID:       m.UserID,
		ClientID:     m.ClientID,
		Title:        m.Title,
		DocumentType: m.DocumentType,
		DocumentURL:  m.DocumentURL,
		DocumentText: m.DocumentText,
		Status:       m.Status,
		Summary:      m.Summary,
	}

	if err := unmarshalColumn(m.Inconsistencies, &a.Inconsistencies); err != nil {
		return nil, fmt.Errorf("inconsistencies column: %w", err)
	}
	if err := unmarshalColumn(m.ConstitutionalIssues, &a.ConstitutionalIssues); err != nil {
		return nil, fmt.Errorf("constitutional_issues column: %w", err)
	}
	if err := unmarshalColumn(m.LegalArguments, &a.LegalArguments); err != nil {
		return nil, fmt.Errorf("legal_arguments column: %w", err)
	}
	if err := unmarshalColumn(m.SuggestedCaseLaws, &a.SuggestedCaseLaws); err != nil {
		return nil, fmt.Errorf("suggested_case_laws column: %w", err)
	}

	return a, nil
}

// FromDomain populates the persistence model from a domain DocumentAnalysis entity
func (m *AnalysisModel) FromDomain(a *legal.DocumentAnalysis) error {
	m.FromDomainBaseEntity(a.BaseEntity)
	m.UserID = a.UserID
	m.ClientID = a.ClientID
	m.Title = a.Title
	m.DocumentType = a.DocumentType
	m.DocumentURL = a.DocumentURL
	m.DocumentText = a.DocumentText
	m.Status = a.Status
	m.Summary = a.Summary

	var err error
	if m.Inconsistencies, err = marshalColumn(a.Inconsistencies); err != nil {
		return fmt.Errorf("inconsistencies column: %w", err)
	}
	if m.ConstitutionalIssues, err = marshalColumn(a.ConstitutionalIssues); err != nil {
		return fmt.Errorf("constitutional_issues column: %w", err)
	}
	if m.LegalArguments, err = marshalColumn(a.LegalArguments); err != nil {
		return fmt.Errorf("legal_arguments column: %w", err)
	}
	if m.SuggestedCaseLaws, err = marshalColumn(a.SuggestedCaseLaws); err != nil {
		return fmt.Errorf("suggested_case_laws column: %w", err)
	}

	return nil
}

func marshalColumn(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalColumn(data []byte, dst any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}
