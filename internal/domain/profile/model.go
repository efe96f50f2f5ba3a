package profile

import "context"

// Interest is one sport a user follows with a self-reported skill level.
type Interest struct {
	SportName string
	Skill     string
}

// Profile is a user as the recommendation pipeline sees them:
// coordinates already decoded from the stored location.
type Profile struct {
	ID        string
	Age       int
	Gender    *string
	Latitude  *float64
	Longitude *float64
	Interests []Interest
}

// InterestBySport indexes interests by sport name. Later entries for the
// same sport win, matching the order rows come back from storage.
func (p Profile) InterestBySport() map[string]string {
	out := make(map[string]string, len(p.Interests))
	for _, interest := range p.Interests {
		out[interest.SportName] = interest.Skill
	}
	return out
}

// Repository loads user profiles. GetByID reports false when the user
// does not exist.
type Repository interface {
	GetByID(ctx context.Context, userID string) (Profile, bool, error)
}
