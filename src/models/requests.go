package models

// Multipart form DTOs for the admin console. Field names are the form part
// names; any part not declared here is rejected. The image travels as the
// file part "image" and the target document of an update as "id".

type EventForm struct {
	ID            string `form:"id"`
	TitleEn       string `form:"title_en" validate:"required_without=TitleMn"`
	TitleMn       string `form:"title_mn"`
	DescriptionEn string `form:"description_en"`
	DescriptionMn string `form:"description_mn"`
	LocationEn    string `form:"location_en"`
	LocationMn    string `form:"location_mn"`
	Date          string `form:"date" validate:"required"`
	TimeString    string `form:"timeString" validate:"max=100"`
	Category      string `form:"category" validate:"required,oneof=campaign workshop fundraiser meeting"`
	University    string `form:"university"`
	Status        string `form:"status" validate:"omitempty,oneof=upcoming past cancelled"`
	Featured      bool   `form:"featured"`
}

type NewsForm struct {
	ID            string `form:"id"`
	TitleEn       string `form:"title_en" validate:"required_without=TitleMn"`
	TitleMn       string `form:"title_mn"`
	SummaryEn     string `form:"summary_en"`
	SummaryMn     string `form:"summary_mn"`
	ContentEn     string `form:"content_en"`
	ContentMn     string `form:"content_mn"`
	Author        string `form:"author" validate:"max=200"`
	PublishedDate string `form:"publishedDate"`
	Tags          string `form:"tags"`
	Featured      bool   `form:"featured"`
}

type OpportunityForm struct {
	ID             string `form:"id"`
	Type           string `form:"type" validate:"required,oneof=scholarship internship volunteer"`
	TitleEn        string `form:"title_en" validate:"required_without=TitleMn"`
	TitleMn        string `form:"title_mn"`
	ProviderEn     string `form:"provider_en"`
	ProviderMn     string `form:"provider_mn"`
	LocationEn     string `form:"location_en"`
	LocationMn     string `form:"location_mn"`
	DescriptionEn  string `form:"description_en"`
	DescriptionMn  string `form:"description_mn"`
	Deadline       string `form:"deadline" validate:"max=100"`
	Link           string `form:"link" validate:"omitempty,url"`
	Tags           string `form:"tags"`
	RequirementsEn string `form:"requirements_en"`
	RequirementsMn string `form:"requirements_mn"`
}

type ClubForm struct {
	ID            string `form:"id"`
	ClubID        string `form:"clubId" validate:"required,max=20"`
	NameEn        string `form:"name_en" validate:"required_without=NameMn"`
	NameMn        string `form:"name_mn"`
	DescriptionEn string `form:"description_en"`
	DescriptionMn string `form:"description_mn"`
	Website       string `form:"website" validate:"omitempty,url"`
	Email         string `form:"email" validate:"omitempty,email"`
}

// SyncUserRequest is the body of POST /api/user/sync.
type SyncUserRequest struct {
	FullName   string `json:"fullName" validate:"required,max=200"`
	StudentID  string `json:"studentId" validate:"required,max=50"`
	University string `json:"university" validate:"max=20"`
}

// UpdateRoleRequest is the body of PUT /api/admin/users/role.
type UpdateRoleRequest struct {
	ID   string `json:"id" validate:"required"`
	Role string `json:"role" validate:"required,oneof=member admin"`
}

// AssignBadgeRequest is the body of POST /api/admin/users/badges.
type AssignBadgeRequest struct {
	ID    string `json:"id" validate:"required"`
	Badge string `json:"badge" validate:"required,max=100"`
}
