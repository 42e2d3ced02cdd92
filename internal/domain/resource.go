package domain

// Resource is any entity whose access is scoped to a project: Project,
// Issue, Comment and Contributor all implement it. OwnerProjectID resolves
// the scope (a project is its own scope); AuthorUserID returns the recorded
// author, or false for entities that have none (contributor records).
type Resource interface {
	OwnerProjectID() ProjectID
	AuthorUserID() (UserID, bool)
}

var (
	_ Resource = (*Project)(nil)
	_ Resource = (*Issue)(nil)
	_ Resource = (*Comment)(nil)
	_ Resource = (*Contributor)(nil)
)
