package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-trainer/internal/question"
)

// corruptSuffix is appended to the backing file name when an unreadable bank is set aside.
const corruptSuffix = ".corrupt"

// QuestionStore keeps the question bank in memory and writes it through to a
// single JSON file after every mutation. It owns every Question; callers only
// ever receive copies.
type QuestionStore struct {
	path      string
	questions []question.Question
	logger    zerolog.Logger
}

var _ question.Bank = (*QuestionStore)(nil)

// Open loads the bank at path, creating an empty file when none exists.
func Open(path string, logger zerolog.Logger) (*QuestionStore, error) {
	s := &QuestionStore{
		path:      path,
		questions: []question.Question{},
		logger:    logger.With().Str("component", "question_store").Str("path", path).Logger(),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *QuestionStore) Path() string {
	return s.path
}

// Load replaces the in-memory bank with the file contents. A missing file is
// created empty; an unparseable one yields an empty bank and is preserved
// next to the original as <path>.corrupt.
func (s *QuestionStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.questions = []question.Question{}
		if err := s.Save(); err != nil {
			return fmt.Errorf("create question file: %w", err)
		}
		s.logger.Info().Msg("created empty question file")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read question file: %w", err)
	}

	questions, err := decode(data)
	if err != nil {
		s.questions = []question.Question{}
		s.setAside(data, err)
		return nil
	}
	s.questions = questions
	s.logger.Debug().Int("questions", len(questions)).Msg("question bank loaded")
	return nil
}

func decode(data []byte) ([]question.Question, error) {
	var questions []question.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", question.ErrPersistenceDecode, err)
	}
	if questions == nil {
		questions = []question.Question{}
	}
	return questions, nil
}

// setAside copies unreadable bytes to the first free <path>.corrupt,
// <path>.corrupt.1, ... so an earlier backup is never overwritten.
func (s *QuestionStore) setAside(data []byte, cause error) {
	backup, err := writeBackup(s.path+corruptSuffix, data)
	if err != nil {
		s.logger.Error().Err(err).Str("backup", backup).Msg("failed to preserve corrupt question file")
	}
	s.logger.Warn().
		Err(cause).
		Str("backup", backup).
		Msg("question file is not valid JSON, starting with an empty bank")
}

func writeBackup(base string, data []byte) (string, error) {
	name := base
	for n := 1; ; n++ {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			name = fmt.Sprintf("%s.%d", base, n)
			continue
		}
		if err != nil {
			return name, err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return name, err
		}
		return name, f.Close()
	}
}

// Save overwrites the backing file with the full bank through a temp file and rename.
func (s *QuestionStore) Save() error {
	data, err := json.MarshalIndent(s.questions, "", "    ")
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("write question file: %w", err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// NextID returns the id a newly added question receives: one past the
// highest id in the bank, so gaps left by hand edits are never reused.
func (s *QuestionStore) NextID() int {
	highest := 0
	for _, q := range s.questions {
		if q.ID > highest {
			highest = q.ID
		}
	}
	return highest + 1
}

// Add appends q and persists the bank. An id already in the bank is rejected.
func (s *QuestionStore) Add(q question.Question) error {
	if s.indexOf(q.ID) >= 0 {
		return question.ValidationError("id", fmt.Sprintf("question %d already exists", q.ID))
	}
	s.questions = append(s.questions, q.Clone())
	if err := s.Save(); err != nil {
		s.questions = s.questions[:len(s.questions)-1]
		return err
	}
	return nil
}

// FindByID returns a copy of the question with id.
func (s *QuestionStore) FindByID(id int) (question.Question, error) {
	i := s.indexOf(id)
	if i < 0 {
		return question.Question{}, question.NotFound(id)
	}
	return s.questions[i].Clone(), nil
}

// All returns copies of every question in id order.
func (s *QuestionStore) All() []question.Question {
	out := make([]question.Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q.Clone())
	}
	return out
}

// Update applies fn to question id and persists the result. The in-memory
// bank is left untouched when fn or the write fails.
func (s *QuestionStore) Update(id int, fn func(q *question.Question) error) (question.Question, error) {
	i := s.indexOf(id)
	if i < 0 {
		return question.Question{}, question.NotFound(id)
	}
	prev := s.questions[i]
	next := prev.Clone()
	if err := fn(&next); err != nil {
		return question.Question{}, err
	}
	s.questions[i] = next
	if err := s.Save(); err != nil {
		s.questions[i] = prev
		return question.Question{}, err
	}
	return next.Clone(), nil
}

// RecordAnswer counts one presentation of id and, when correct, one correct answer.
func (s *QuestionStore) RecordAnswer(id int, correct bool) (question.Question, error) {
	return s.Update(id, func(q *question.Question) error {
		q.IncrementShown()
		if correct {
			q.IncrementCorrect()
		}
		return nil
	})
}

// ToggleActive flips the active flag of id.
func (s *QuestionStore) ToggleActive(id int) (question.Question, error) {
	return s.Update(id, func(q *question.Question) error {
		q.Active = !q.Active
		return nil
	})
}

func (s *QuestionStore) indexOf(id int) int {
	for i := range s.questions {
		if s.questions[i].ID == id {
			return i
		}
	}
	return -1
}
