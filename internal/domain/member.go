package domain

// TeamMember is one entry of the team roster.
type TeamMember struct {
	ID       int64
	Name     string
	Role     string
	Avatar   string
	PageLink string
}
