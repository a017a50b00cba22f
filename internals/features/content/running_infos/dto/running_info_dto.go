package dto

import (
	"strings"
	"time"

	"newmeclass_backend/internals/features/content/running_infos/model"
)

type CreateRunningInfoRequest struct {
	Message   string     `json:"message" validate:"required,max=500"`
	IsActive  *bool      `json:"is_active"`
	Priority  int        `json:"priority"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	LinkURL   string     `json:"link_url" validate:"omitempty,url"`
	LinkText  string     `json:"link_text" validate:"omitempty,max=100"`
	BgColor   string     `json:"bg_color" validate:"omitempty,hexcolor,len=7"`
	TextColor string     `json:"text_color" validate:"omitempty,hexcolor,len=7"`
}

func (r CreateRunningInfoRequest) ToModel() model.RunningInfoModel {
	return model.RunningInfoModel{
		RunningInfoMessage:   strings.TrimSpace(r.Message),
		RunningInfoIsActive:  r.IsActive == nil || *r.IsActive,
		RunningInfoPriority:  r.Priority,
		RunningInfoStartDate: r.StartDate,
		RunningInfoEndDate:   r.EndDate,
		RunningInfoLinkURL:   r.LinkURL,
		RunningInfoLinkText:  r.LinkText,
		RunningInfoBgColor:   r.BgColor,
		RunningInfoTextColor: r.TextColor,
	}
}

type UpdateRunningInfoRequest struct {
	Message    *string    `json:"message" validate:"omitempty,max=500"`
	IsActive   *bool      `json:"is_active"`
	Priority   *int       `json:"priority"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	ClearDates bool       `json:"clear_dates"`
	LinkURL    *string    `json:"link_url" validate:"omitempty,url"`
	LinkText   *string    `json:"link_text" validate:"omitempty,max=100"`
	BgColor    *string    `json:"bg_color" validate:"omitempty,hexcolor,len=7"`
	TextColor  *string    `json:"text_color" validate:"omitempty,hexcolor,len=7"`
}

func (r UpdateRunningInfoRequest) Apply(m *model.RunningInfoModel) {
	if r.Message != nil && strings.TrimSpace(*r.Message) != "" {
		m.RunningInfoMessage = strings.TrimSpace(*r.Message)
	}
	if r.IsActive != nil {
		m.RunningInfoIsActive = *r.IsActive
	}
	if r.Priority != nil {
		m.RunningInfoPriority = *r.Priority
	}
	if r.ClearDates {
		m.RunningInfoStartDate, m.RunningInfoEndDate = nil, nil
	}
	if r.StartDate != nil {
		m.RunningInfoStartDate = r.StartDate
	}
	if r.EndDate != nil {
		m.RunningInfoEndDate = r.EndDate
	}
	if r.LinkURL != nil {
		m.RunningInfoLinkURL = *r.LinkURL
	}
	if r.LinkText != nil {
		m.RunningInfoLinkText = *r.LinkText
	}
	if r.BgColor != nil && *r.BgColor != "" {
		m.RunningInfoBgColor = *r.BgColor
	}
	if r.TextColor != nil && *r.TextColor != "" {
		m.RunningInfoTextColor = *r.TextColor
	}
}
