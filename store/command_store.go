package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"crypto-exchange-bot/models"
)

const commandsCollection = "commands"

type commandsDocument struct {
	Commands []*models.CustomCommand `json:"commands"`
}

// CommandStore owns the custom commands document, keyed by command name.
type CommandStore struct {
	mu   sync.Mutex
	path string
	log  *zap.Logger
}

func NewCommandStore(dataDir string, log *zap.Logger) *CommandStore {
	return &CommandStore{path: filepath.Join(dataDir, "commands.json"), log: log}
}

// load assumes s.mu is held.
func (s *CommandStore) load() *commandsDocument {
	doc := &commandsDocument{Commands: []*models.CustomCommand{}}
	err := readDocument(s.path, doc)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Error("commands document unreadable",
			zap.String("path", s.path), zap.Error(err))
		return &commandsDocument{Commands: []*models.CustomCommand{}}
	}
	return doc
}

func (s *CommandStore) save(op string, doc *commandsDocument) error {
	if err := writeDocument(s.path, doc); err != nil {
		return &models.PersistenceError{Collection: commandsCollection, Op: op, Err: err}
	}
	return nil
}

func (s *CommandStore) GetAll() ([]*models.CustomCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load().Commands, nil
}

func (s *CommandStore) Get(name string) (*models.CustomCommand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cmd := range s.load().Commands {
		if cmd.Command == name {
			return cmd, nil
		}
	}
	return nil, models.ErrNotFound
}

// Upsert creates the command or replaces an existing one with the same name.
func (s *CommandStore) Upsert(cmd *models.CustomCommand) error {
	if err := models.ValidateCommandName(cmd.Command); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for i, existing := range doc.Commands {
		if existing.Command == cmd.Command {
			doc.Commands[i] = cmd
			return s.save("upsert", doc)
		}
	}
	doc.Commands = append(doc.Commands, cmd)
	return s.save("upsert", doc)
}

func (s *CommandStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc := s.load()
	for i, cmd := range doc.Commands {
		if cmd.Command == name {
			doc.Commands = append(doc.Commands[:i], doc.Commands[i+1:]...)
			return s.save("remove", doc)
		}
	}
	return models.ErrNotFound
}
