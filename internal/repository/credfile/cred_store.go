// Package credfile хранит учетные данные администратора между запусками
// консоли в JSON-файле.
package credfile

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jimlawless/whereami"

	"github.com/robosite/storefront/internal/domain"
	"github.com/robosite/storefront/pkg/e"
	"github.com/robosite/storefront/pkg/logger"
)

type credModel struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type CredStore struct {
	path   string
	logger logger.Logger
}

func NewCredStore(path string, logger logger.Logger) *CredStore {
	return &CredStore{
		path:   path,
		logger: logger,
	}
}

// Load читает сохраненные учетные данные. Отсутствие файла и битое
// содержимое равнозначны: nil без ошибки, консоль стартует разлогиненной.
func (c *CredStore) Load() (*domain.AdminCredential, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model credModel
	if err := json.Unmarshal(data, &model); err != nil || model.Token == "" {
		c.logger.Warnf("discarding credential file %s: %v",
			c.path, e.Wrap(whereami.WhereAmI(), e.ErrMalformedStoredData))
		os.Remove(c.path)
		return nil, nil
	}

	return domain.NewAdminCredential(model.Token, domain.AdminUser{
		Name: model.Name,
		Role: model.Role,
	}), nil
}

func (c *CredStore) Save(cred *domain.AdminCredential) error {
	data, err := json.Marshal(credModel{
		Token: cred.Token,
		Name:  cred.User.Name,
		Role:  cred.User.Role,
	})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := os.WriteFile(c.path, data, 0o600); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (c *CredStore) Clear() error {
	err := os.Remove(c.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
