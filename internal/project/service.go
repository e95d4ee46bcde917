package project

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/phravins/genstudio/internal/account"
	"github.com/phravins/genstudio/internal/history"
	"github.com/phravins/genstudio/internal/templates"
	"github.com/phravins/genstudio/pkg/utils"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrAlreadyExists    = errors.New("destination already exists")
)

// Session is the part of the session manager generation depends on.
type Session interface {
	CurrentUser() (account.UserProfile, bool)
	CheckQuota() account.Quota
	IncrementGenerationCount(ctx context.Context) error
}

type Request struct {
	Template  string
	Name      string // empty picks a free name
	ParentDir string // empty uses the workspace
	Archive   bool   // write <name>.zip instead of a folder
	InitGit   bool
}

type Result struct {
	Name     string
	Path     string
	Files    int
	Template templates.Template
	Quota    account.Quota
}

// Service generates projects on behalf of the signed-in user.
type Service struct {
	session Session
	catalog *templates.Catalog
	manager *Manager
	history *history.Log
	logger  zerolog.Logger
}

func NewService(s Session, c *templates.Catalog, m *Manager, h *history.Log, logger zerolog.Logger) *Service {
	return &Service{session: s, catalog: c, manager: m, history: h, logger: logger}
}

// Generate renders a template to disk and spends one generation. Nothing is
// spent when any step before writing fails.
func (s *Service) Generate(ctx context.Context, req Request) (Result, error) {
	user, ok := s.session.CurrentUser()
	if !ok {
		return Result{}, account.ErrNotAuthenticated
	}
	if q := s.session.CheckQuota(); !q.CanGenerate {
		return Result{}, account.ErrQuotaExceeded
	}

	tpl, ok := s.catalog.Get(req.Template)
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, req.Template)
	}

	parent, err := s.manager.ValidateParentDir(req.ParentDir)
	if err != nil {
		return Result{}, err
	}
	name := req.Name
	if name == "" {
		name = s.manager.SuggestName(tpl.Name, parent)
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return Result{}, fmt.Errorf("%w: project name %q", account.ErrInvalidInput, name)
	}

	files, err := Render(tpl, name)
	if err != nil {
		return Result{}, err
	}

	target := filepath.Join(parent, name)
	if req.Archive {
		target += ".zip"
	}
	if utils.PathExists(target) {
		return Result{}, fmt.Errorf("%w: %s", ErrAlreadyExists, target)
	}

	if req.Archive {
		data, err := Archive(name, files)
		if err != nil {
			return Result{}, fmt.Errorf("failed to build archive: %w", err)
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return Result{}, err
		}
	} else {
		if err := Write(target, files); err != nil {
			return Result{}, err
		}
		if req.InitGit {
			if err := initGit(target); err != nil {
				s.logger.Warn().Err(err).Str("path", target).Msg("git init failed")
			}
		}
	}

	if err := s.session.IncrementGenerationCount(ctx); err != nil {
		return Result{}, fmt.Errorf("project written to %s but usage was not recorded: %w", target, err)
	}
	if err := s.history.Add(history.Entry{Name: name, Path: target, Template: tpl.Name, UserID: user.ID}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record history")
	}

	s.logger.Info().Str("template", tpl.Name).Str("path", target).Str("user", user.ID).Msg("project generated")
	return Result{
		Name:     name,
		Path:     target,
		Files:    len(files),
		Template: tpl,
		Quota:    s.session.CheckQuota(),
	}, nil
}
