package model

import "time"

type Classroom struct {
	ClassroomID string    `bson:"classroom_id" json:"classroom_id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	ProfessorID string    `bson:"professor_id" json:"professor_id"`
	JoinCode    string    `bson:"join_code" json:"join_code"`
	StudentIDs  []string  `bson:"student_ids" json:"student_ids"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

func (c *Classroom) HasStudent(userID string) bool {
	for _, id := range c.StudentIDs {
		if id == userID {
			return true
		}
	}
	return false
}
