package user

type ListFilter struct {
	Role   string
	Status string
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type UserResponse struct {
	ID            int64   `json:"user_id"`
	FullName      string  `json:"full_name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	Status        string  `json:"status"`
	StudentNumber *string `json:"student_number,omitempty"`
	Course        *string `json:"course,omitempty"`
	Age           *int    `json:"age,omitempty"`
	Gender        *string `json:"gender,omitempty"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Address       *string `json:"address,omitempty"`
	RequiredHours *int    `json:"required_hours,omitempty"`
	ProfilePhoto  *string `json:"profile_photo,omitempty"`
	DateCreated   string  `json:"date_created"`
}

// ToResponse never exposes the password hash.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FullName:      u.FullName,
		Email:         u.Email,
		Role:          u.Role,
		Status:        u.Status,
		StudentNumber: u.StudentNumber,
		Course:        u.Course,
		Age:           u.Age,
		Gender:        u.Gender,
		ContactNumber: u.ContactNumber,
		Address:       u.Address,
		RequiredHours: u.RequiredHours,
		ProfilePhoto:  u.ProfilePhoto,
		DateCreated:   u.DateCreated.Format("2006-01-02 15:04:05"),
	}
}
