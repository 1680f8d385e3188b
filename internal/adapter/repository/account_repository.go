package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	domainErrors "github.com/wekeepgrowing/connect-demo/internal/domain/errors"
	"github.com/wekeepgrowing/connect-demo/internal/domain/model"
	"github.com/wekeepgrowing/connect-demo/internal/domain/repository"
)

// storeDocument is the on-disk shape: a single JSON document holding
// every record, rewritten in full on each mutation.
type storeDocument struct {
	Accounts []*model.PlatformAccount `json:"accounts"`
}

// accountRepository is a file-backed store. All operations serialize
// through a single mutex so concurrent read-modify-write cycles cannot
// lose updates, and every write lands atomically via rename so the
// document on disk is always complete.
type accountRepository struct {
	mu   sync.Mutex
	path string
}

func NewAccountRepository(path string) repository.AccountRepository {
	return &accountRepository{path: path}
}

func (r *accountRepository) load() (*storeDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &storeDocument{Accounts: []*model.PlatformAccount{}}, nil
		}
		return nil, domainErrors.Storage("failed to read account store", err)
	}

	var doc storeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, domainErrors.Storage("account store is corrupt", err)
	}
	if doc.Accounts == nil {
		doc.Accounts = []*model.PlatformAccount{}
	}
	return &doc, nil
}

func (r *accountRepository) save(doc *storeDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return domainErrors.Storage("failed to encode account store", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domainErrors.Storage("failed to create store directory", err)
	}

	tmp, err := os.CreateTemp(dir, "accounts-*.json")
	if err != nil {
		return domainErrors.Storage("failed to create temp store file", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return domainErrors.Storage("failed to write account store", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return domainErrors.Storage("failed to flush account store", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return domainErrors.Storage("failed to replace account store", err)
	}
	return nil
}

func (r *accountRepository) Create(ctx context.Context, email, stripeAccountID, stripeCustomerID string) (*model.PlatformAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	account := &model.PlatformAccount{
		ID:               model.NewAccountID(),
		Email:            email,
		StripeAccountID:  stripeAccountID,
		StripeCustomerID: stripeCustomerID,
	}
	doc.Accounts = append(doc.Accounts, account)

	if err := r.save(doc); err != nil {
		return nil, err
	}
	return cloneAccount(account), nil
}

func (r *accountRepository) Get(ctx context.Context, id string) (*model.PlatformAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, account := range doc.Accounts {
		if account.ID == id {
			return cloneAccount(account), nil
		}
	}
	return nil, nil
}

func (r *accountRepository) GetByStripeAccountID(ctx context.Context, stripeAccountID string) (*model.PlatformAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, account := range doc.Accounts {
		if account.StripeAccountID == stripeAccountID {
			return cloneAccount(account), nil
		}
	}
	return nil, nil
}

func (r *accountRepository) List(ctx context.Context) ([]*model.PlatformAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	accounts := make([]*model.PlatformAccount, 0, len(doc.Accounts))
	for _, account := range doc.Accounts {
		accounts = append(accounts, cloneAccount(account))
	}
	return accounts, nil
}

func (r *accountRepository) Update(ctx context.Context, id string, updates model.AccountUpdates) (*model.PlatformAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, account := range doc.Accounts {
		if account.ID != id {
			continue
		}
		if updates.Email != nil {
			account.Email = *updates.Email
		}
		if updates.StripeCustomerID != nil {
			account.StripeCustomerID = *updates.StripeCustomerID
		}
		if err := r.save(doc); err != nil {
			return nil, err
		}
		return cloneAccount(account), nil
	}
	return nil, nil
}

func (r *accountRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return false, err
	}
	for i, account := range doc.Accounts {
		if account.ID == id {
			doc.Accounts = append(doc.Accounts[:i], doc.Accounts[i+1:]...)
			if err := r.save(doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

func cloneAccount(account *model.PlatformAccount) *model.PlatformAccount {
	clone := *account
	return &clone
}
