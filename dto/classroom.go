package dto

type CreateClassroomRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description,omitempty"`
}

type JoinClassroomRequest struct {
	JoinCode string `json:"join_code" binding:"required,len=6"`
}
