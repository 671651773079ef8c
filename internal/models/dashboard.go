package models

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusReview     ProjectStatus = "Review"
	ProjectStatusCompleted  ProjectStatus = "Completed"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusReview, ProjectStatusCompleted:
		return true
	}
	return false
}

// ProjectFile is one uploaded design file inside a project's package folder.
// The bytes live in the object store; the register keeps metadata only.
// Index is the file's position within its package folder, assigned when a
// snapshot is taken; file operations address files by it, so it stays valid
// even when a view hides some entries.
type ProjectFile struct {
	Index               int    `json:"index"`
	Name                string `json:"name"`
	ObjectKey           string `json:"objectKey"`
	SizeBytes           int64  `json:"sizeBytes"`
	UploadedBy          string `json:"uploadedBy"`
	ApprovedForCustomer bool   `json:"approvedForCustomer"`
}

type Project struct {
	ID            int                      `json:"id"`
	Name          string                   `json:"name"`
	Customer      string                   `json:"customer"`
	Status        ProjectStatus            `json:"status"`
	Progress      int                      `json:"progress"`
	AssignedRoles []string                 `json:"assignedRoles"`
	LastUpdatedBy string                   `json:"lastUpdatedBy,omitempty"`
	DesignPackage string                   `json:"designPackage,omitempty"`
	Files         map[string][]ProjectFile `json:"files,omitempty"`
}

type TeamMember struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

type DocumentItem struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	UploadedBy string `json:"uploadedBy"`
}

type Meeting struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	AssignedTo []string `json:"assignedTo"`
	Date       string   `json:"date"`
}

type Message struct {
	ID      int64     `json:"id"`
	From    string    `json:"from"`
	To      string    `json:"to"`
	Content string    `json:"content"`
	Date    time.Time `json:"date"`
}

// SettingsData is the single settings document edited from the settings panel.
type SettingsData struct {
	ProfileName   string `json:"profileName"`
	ProfileEmail  string `json:"profileEmail"`
	Password      string `json:"password"`
	Preferences   string `json:"preferences"`
	Notifications string `json:"notifications"`
}

// DesignPackage is one service tier from the marketing catalog; its ID keys
// a project's file collection.
type DesignPackage struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Tagline  string   `json:"tagline,omitempty"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}
