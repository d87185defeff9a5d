package domain

// Vues agrégées : entité + compteurs dérivés + flags relatifs au viewer.
// Les compteurs sont recalculés côté store, jamais stockés comme vérité ici.
// Les flags viewer sont des POINTEURS : nil = lecteur anonyme, et le champ
// disparaît du JSON (omitempty). On ne renvoie JAMAIS un faux "false" silencieux.

type PostCounts struct {
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

type PostViewerFlags struct {
	Liked bool `json:"currentUserLiked"`
	Saved bool `json:"currentUserSaved"`
}

type PostView struct {
	Post   Post             `json:"post"`
	Counts PostCounts       `json:"counts"`
	Viewer *PostViewerFlags `json:"viewer,omitempty"`
}

type UserCounts struct {
	Posts     int64 `json:"posts"`
	Followers int64 `json:"followers"`
	Following int64 `json:"following"`
}

type UserViewerFlags struct {
	IsFollowing bool `json:"isFollowing"`
}

type UserView struct {
	User   User             `json:"user"`
	Counts UserCounts       `json:"counts"`
	Viewer *UserViewerFlags `json:"viewer,omitempty"`
}

type PetCounts struct {
	HealthRecords int64 `json:"healthRecords"`
}

type PetView struct {
	Pet    Pet       `json:"pet"`
	Counts PetCounts `json:"counts"`
}

type DiscussionCounts struct {
	Comments int64 `json:"comments"`
}

type DiscussionView struct {
	Discussion Discussion       `json:"discussion"`
	Counts     DiscussionCounts `json:"counts"`
}
