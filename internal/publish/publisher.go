package publish

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/coursecms/coursesite/internal/config"
	"github.com/coursecms/coursesite/internal/export"
	"github.com/coursecms/coursesite/internal/models"
)

var (
	// ErrNotConfigured is returned when the token or repository coordinates are missing.
	ErrNotConfigured = errors.New("publishing is not configured")

	// ErrInvalidSiteData is returned when the snapshot lacks its site settings.
	ErrInvalidSiteData = errors.New("site data is missing siteSettings")
)

// ContentsAPI is the part of the hosting API the publisher uses.
type ContentsAPI interface {
	FileSHA(ctx context.Context, t Target) (string, error)
	PutFile(ctx context.Context, t Target, commit CommitRequest) error
}

// Options describes where and how content is committed.
type Options struct {
	Token         string
	Target        Target
	CommitMessage string
	Committer     Committer
}

// Configured reports whether every required option is present.
func (o Options) Configured() bool {
	return o.Token != "" && o.Target.Owner != "" && o.Target.Repo != "" && o.Target.Branch != "" && o.Target.Path != ""
}

// Publisher commits rendered snapshots. It never retries: a failed attempt is
// reported once and the admin triggers the next one.
type Publisher struct {
	api  ContentsAPI
	opts Options
}

// NewPublisher creates a publisher. api may be nil when opts are incomplete;
// Publish then fails with ErrNotConfigured.
func NewPublisher(api ContentsAPI, opts Options) *Publisher {
	return &Publisher{api: api, opts: opts}
}

// NewFromSettings builds a publisher from the hosting settings. Incomplete
// settings still yield a publisher; it reports ErrNotConfigured per attempt.
func NewFromSettings(gh config.GitHubSettings) *Publisher {
	opts := Options{
		Token: gh.Token,
		Target: Target{
			Owner:  gh.Owner,
			Repo:   gh.Repo,
			Branch: gh.Branch,
			Path:   gh.Path,
		},
		CommitMessage: gh.CommitMessage,
		Committer: Committer{
			Name:  gh.CommitterName,
			Email: gh.CommitterEmail,
		},
	}

	if !opts.Configured() {
		log.Warn().Msg("Content publishing is not configured")
		return NewPublisher(nil, opts)
	}
	return NewPublisher(NewClient(gh.APIURL, gh.Token, nil), opts)
}

// Configured reports whether Publish can reach the hosting API at all.
func (p *Publisher) Configured() bool {
	return p.api != nil && p.opts.Configured()
}

// Publish renders data and commits it on top of the file's current revision.
// When the revision fetch fails the commit is never attempted. A stale
// revision surfaces as ErrConflict. In every failure case the remote file is
// left as it was.
func (p *Publisher) Publish(ctx context.Context, data models.SiteData) error {
	if !p.Configured() {
		return ErrNotConfigured
	}
	if data.SiteSettings == nil {
		return ErrInvalidSiteData
	}

	start := time.Now()
	target := p.opts.Target

	sha, err := p.api.FileSHA(ctx, target)
	if err != nil {
		return fmt.Errorf("fetch revision: %w", err)
	}

	artifact, err := export.Render(data)
	if err != nil {
		return err
	}

	commit := CommitRequest{
		Message:   p.opts.CommitMessage,
		Content:   base64.StdEncoding.EncodeToString(artifact),
		SHA:       sha,
		Branch:    target.Branch,
		Committer: p.opts.Committer,
	}
	if err := p.api.PutFile(ctx, target, commit); err != nil {
		return fmt.Errorf("commit content: %w", err)
	}

	log.Info().
		Str("repo", target.Owner+"/"+target.Repo).
		Str("branch", target.Branch).
		Str("path", target.Path).
		Int("bytes", len(artifact)).
		Dur("duration", time.Since(start)).
		Msg("Content published")
	return nil
}
