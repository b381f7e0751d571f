package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"vibenet_backend/internal/models"
)

const dateLayout = "2006-01-02"

// Date accepts "2006-01-02" or RFC 3339 and renders as "2006-01-02".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	d.Time = t.UTC()
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(dateLayout))
}

// UpdateProfileRequest is a partial update: nil fields keep their value.
type UpdateProfileRequest struct {
	FullName    *string `json:"fullName" validate:"omitempty,min=1,max=200"`
	Mobile      *string `json:"mobileNumber" validate:"omitempty,max=20"`
	Gender      *string `json:"gender" validate:"omitempty,is-gender"`
	DateOfBirth *Date   `json:"dateOfBirth"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	State       *string `json:"state" validate:"omitempty,max=100"`
	Country     *string `json:"country" validate:"omitempty,max=100"`
	Bio         *string `json:"bio" validate:"omitempty,max=500"`
}

// Normalize trims the present fields and lowercases gender.
func (r *UpdateProfileRequest) Normalize() {
	for _, field := range []*string{r.FullName, r.Mobile, r.City, r.State, r.Country, r.Bio} {
		if field != nil {
			*field = strings.TrimSpace(*field)
		}
	}
	if r.Gender != nil {
		*r.Gender = strings.ToLower(strings.TrimSpace(*r.Gender))
	}
}

// UpdateInterestsRequest is the body of PUT /{userId}/interests. An empty or
// missing list is rejected by the service with "No interests provided.".
type UpdateInterestsRequest struct {
	InterestIDs []int `json:"interestIds" validate:"dive,gt=0"`
}

// UserProfile is the owner's view of an account.
type UserProfile struct {
	UserID            string    `json:"userId"`
	FullName          string    `json:"fullName"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	MobileNumber      *string   `json:"mobileNumber"`
	Gender            *string   `json:"gender"`
	DateOfBirth       *Date     `json:"dateOfBirth"`
	City              *string   `json:"city"`
	State             *string   `json:"state"`
	Country           *string   `json:"country"`
	Bio               *string   `json:"bio"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
	Interests         []int     `json:"interests"`
	IsEmailVerified   bool      `json:"isEmailVerified"`
	IsMobileVerified  bool      `json:"isMobileVerified"`
	IsSubscribed      bool      `json:"isSubscribed"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// PublicProfile is what other users see.
type PublicProfile struct {
	FullName          string    `json:"fullName"`
	Username          string    `json:"username"`
	Bio               *string   `json:"bio"`
	ProfilePictureURL *string   `json:"profilePictureUrl"`
	Interests         []int     `json:"interests"`
	CreatedAt         time.Time `json:"createdAt"`
	ConnectionCount   int       `json:"connectionCount"`
}

type ProfilePicture struct {
	URL string `json:"url"`
}

type Interest struct {
	ID   int    `json:"interestId"`
	Name string `json:"name"`
}

func NewUserProfile(u *models.User) *UserProfile {
	p := &UserProfile{
		UserID:            u.ID,
		FullName:          u.FullName,
		Username:          u.Username,
		Email:             u.Email,
		MobileNumber:      u.Mobile,
		Gender:            u.Gender,
		City:              u.City,
		State:             u.State,
		Country:           u.Country,
		Bio:               u.Bio,
		ProfilePictureURL: u.ProfilePictureURL,
		Interests:         nonNil(u.InterestIDs()),
		IsEmailVerified:   u.IsEmailVerified,
		IsMobileVerified:  u.IsMobileVerified,
		IsSubscribed:      u.IsSubscribed,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = &Date{Time: *u.DateOfBirth}
	}
	return p
}

func NewPublicProfile(p *models.PublicProfile, connections int) *PublicProfile {
	return &PublicProfile{
		FullName:          p.FullName,
		Username:          p.Username,
		Bio:               p.Bio,
		ProfilePictureURL: p.ProfilePictureURL,
		Interests:         nonNil(models.DecodeInterestIDs(p.Interests)),
		CreatedAt:         p.CreatedAt,
		ConnectionCount:   connections,
	}
}

func nonNil(ids []int) []int {
	if ids == nil {
		return []int{}
	}
	return ids
}
