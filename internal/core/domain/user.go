package domain

import (
	"strings"
	"time"
)

type MembershipLevel string

const (
	MembershipRegular MembershipLevel = "REGULAR"
	MembershipSilver  MembershipLevel = "SILVER"
	MembershipGold    MembershipLevel = "GOLD"
	MembershipDiamond MembershipLevel = "DIAMOND"
)

// User est le profil social. Le compte lui-même (mot de passe, sessions)
// vit chez le fournisseur d'identité externe ; ici on ne gère que le profil.
type User struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	Username        string          `json:"username"`
	FullName        string          `json:"fullName,omitempty"`
	Bio             string          `json:"bio,omitempty"`
	AvatarURL       string          `json:"avatarUrl,omitempty"`
	CoverImageURL   string          `json:"coverImageUrl,omitempty"`
	IsVerified      bool            `json:"isVerified"`
	MembershipLevel MembershipLevel `json:"membershipLevel"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ProfileUpdate porte les champs modifiables par l'utilisateur lui-même.
// Un pointeur nil = champ non touché.
type ProfileUpdate struct {
	FullName  *string
	Bio       *string
	AvatarURL *string
}

const maxBioLength = 500

// Validate vérifie les invariants d'une mise à jour de profil.
func (p ProfileUpdate) Validate() error {
	if p.FullName != nil && len(strings.TrimSpace(*p.FullName)) > 100 {
		return ErrInvalidInput
	}
	if p.Bio != nil && len(*p.Bio) > maxBioLength {
		return ErrInvalidInput
	}
	return nil
}

// Apply pose les champs présents et met à jour le timestamp.
func (u *User) Apply(p ProfileUpdate) {
	if p.FullName != nil {
		u.FullName = strings.TrimSpace(*p.FullName)
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	u.UpdatedAt = time.Now().UTC()
}
