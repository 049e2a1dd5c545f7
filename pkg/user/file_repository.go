package user

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/tendant/simple-idm-multiuser/pkg/discriminator"
)

const usersFile = "users.json"

// fileUserRecord keeps the class next to the data so the record can be
// decoded into the right type
type fileUserRecord struct {
	Class discriminator.Class `json:"class"`
	Data  json.RawMessage     `json:"data"`
}

type fileUserData struct {
	Users []fileUserRecord `json:"users"`
}

// FileRepository implements Repository on top of InMemoryRepository,
// writing every change to a JSON file in dataDir
type FileRepository struct {
	dataDir string
	mem     *InMemoryRepository
	mutex   sync.Mutex
}

// NewFileRepository creates a file-based user repository and loads the
// users already stored in dataDir
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	repo := &FileRepository{
		dataDir: dataDir,
		mem:     NewInMemoryRepository(),
	}
	if err := repo.load(); err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	return repo, nil
}

func (r *FileRepository) Create(ctx context.Context, u User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := r.mem.Create(ctx, u); err != nil {
		return err
	}
	if err := r.save(ctx); err != nil {
		r.mem.remove(u.Base().ID)
		return err
	}
	return nil
}

func (r *FileRepository) Get(ctx context.Context, id uuid.UUID) (User, error) {
	return r.mem.Get(ctx, id)
}

func (r *FileRepository) Update(ctx context.Context, u User) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	previous, err := r.snapshot(ctx, u.Base().ID)
	if err != nil {
		return err
	}
	if err := r.mem.Update(ctx, u); err != nil {
		return err
	}
	if err := r.save(ctx); err != nil {
		r.mem.restore(previous)
		return err
	}
	return nil
}

// snapshot returns a copy of the stored user id
func (r *FileRepository) snapshot(ctx context.Context, id uuid.UUID) (User, error) {
	stored, err := r.mem.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	clone, ok := NewByClass(stored.UserClass())
	if !ok {
		return nil, fmt.Errorf("unknown user class %q", stored.UserClass())
	}
	if err := copier.Copy(clone, stored); err != nil {
		return nil, fmt.Errorf("failed to copy user %s: %w", id, err)
	}
	return clone, nil
}

func (r *FileRepository) List(ctx context.Context) ([]User, error) {
	return r.mem.List(ctx)
}

// load reads user data from file
func (r *FileRepository) load() error {
	data, err := os.ReadFile(filepath.Join(r.dataDir, usersFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	var stored fileUserData
	if err := json.Unmarshal(data, &stored); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}

	for _, rec := range stored.Users {
		u, ok := NewByClass(rec.Class)
		if !ok {
			return fmt.Errorf("unknown user class %q", rec.Class)
		}
		if err := json.Unmarshal(rec.Data, u); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", rec.Class, err)
		}
		r.mem.restore(u)
	}
	return nil
}

// save writes user data to file atomically
func (r *FileRepository) save(ctx context.Context) error {
	users, err := r.mem.List(ctx)
	if err != nil {
		return err
	}

	stored := fileUserData{Users: make([]fileUserRecord, 0, len(users))}
	for _, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to marshal user %s: %w", u.Base().ID, err)
		}
		stored.Users = append(stored.Users, fileUserRecord{Class: u.UserClass(), Data: data})
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tempFile := filepath.Join(r.dataDir, usersFile+".tmp")
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempFile, filepath.Join(r.dataDir, usersFile)); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
