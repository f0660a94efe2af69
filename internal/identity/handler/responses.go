package handler

import "counsel/internal/identity/models"

type LawyerResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone,omitempty"`
	Specialization  string `json:"specialization,omitempty"`
	Location        string `json:"location,omitempty"`
	ExperienceYears int    `json:"experience_years"`
	ProBono         bool   `json:"pro_bono"`
}

type LawyerListResponse struct {
	Lawyers []LawyerResponse `json:"lawyers"`
}

func toLawyerResponse(l *models.Lawyer) LawyerResponse {
	return LawyerResponse{
		ID:              l.ID.String(),
		Name:            l.Name,
		Email:           l.Email,
		Phone:           l.Phone,
		Specialization:  l.Specialization,
		Location:        l.Location,
		ExperienceYears: l.ExperienceYears,
		ProBono:         l.ProBono,
	}
}
