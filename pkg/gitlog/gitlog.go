// Package gitlog reads commit metadata from a git repository. Commits are the
// events journal entries are recorded for.
package gitlog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoCommits is returned when HEAD does not point at a commit yet.
var ErrNoCommits = errors.New("repository has no commits")

// shortHashLen is the abbreviated hash length used in entry headers.
const shortHashLen = 7

// Commit is the metadata of one commit.
type Commit struct {
	Hash      string    `json:"hash"`
	ShortHash string    `json:"short_hash"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Author    string    `json:"author"`
	Email     string    `json:"email"`
	Time      time.Time `json:"time"`

	// ParentTime is the committer time of the first parent, nil for a root
	// commit. It is the previous event for reflection discovery.
	ParentTime *time.Time `json:"parent_time,omitempty"`
}

// Repository is an opened git repository.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens the repository containing path, searching parent directories
// for the .git directory.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	return &Repository{repo: repo, path: path}, nil
}

// Head returns the commit HEAD points at.
func (r *Repository) Head() (*Commit, error) {
	ref, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, ErrNoCommits
		}
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	return r.load(ref.Hash())
}

// Commit returns the commit a revision (hash, branch, tag, HEAD~1, ...)
// resolves to.
func (r *Repository) Commit(rev string) (*Commit, error) {
	if rev == "" || rev == "HEAD" {
		return r.Head()
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", rev, err)
	}
	return r.load(*hash)
}

func (r *Repository) load(hash plumbing.Hash) (*Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}

	commit := fromObject(c)
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("reading parent of %s: %w", commit.ShortHash, err)
		}
		when := parent.Committer.When
		commit.ParentTime = &when
	}
	return commit, nil
}

func fromObject(c *object.Commit) *Commit {
	hash := c.Hash.String()
	short := hash
	if len(short) > shortHashLen {
		short = short[:shortHashLen]
	}

	message := strings.TrimRight(c.Message, "\n")
	subject, _, _ := strings.Cut(message, "\n")

	return &Commit{
		Hash:      hash,
		ShortHash: short,
		Subject:   strings.TrimSpace(subject),
		Message:   message,
		Author:    c.Author.Name,
		Email:     c.Author.Email,
		Time:      c.Committer.When,
	}
}

// Details renders the commit as the "Commit Details" section of an entry.
func (c *Commit) Details() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "- Hash: `%s`\n", c.Hash)
	fmt.Fprintf(&sb, "- Author: %s <%s>\n", c.Author, c.Email)
	fmt.Fprintf(&sb, "- Date: %s", c.Time.Format(time.RFC3339))
	if body := strings.TrimSpace(strings.TrimPrefix(c.Message, c.Subject)); body != "" {
		sb.WriteString("\n\n")
		sb.WriteString(body)
	}
	return sb.String()
}
