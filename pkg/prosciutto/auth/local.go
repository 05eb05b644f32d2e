package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/constants"
	"github.com/BrandonKowalski/prosciutto/pkg/prosciutto/prefs"
)

// LocalProvider authenticates without a server. Anonymous players get a
// random id that is stored so it survives restarts; password accounts get an
// id derived from the username.
type LocalProvider struct {
	store    prefs.Prefs
	accounts map[string]string
}

// NewLocalProvider creates a provider. accounts maps usernames to passwords
// and may be nil.
func NewLocalProvider(store prefs.Prefs, accounts map[string]string) *LocalProvider {
	return &LocalProvider{store: store, accounts: accounts}
}

func (p *LocalProvider) SignInAnonymously(ctx context.Context) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	id := p.store.GetString(constants.PrefPlayerID, "")
	if id == "" {
		id = uuid.NewString()
		p.store.SetString(constants.PrefPlayerID, id)
		if err := p.store.Save(); err != nil {
			return Identity{}, err
		}
	}
	return Identity{PlayerID: id, Anonymous: true}, nil
}

func (p *LocalProvider) SignInWithPassword(ctx context.Context, username, password string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	want, ok := p.accounts[username]
	if !ok || want != password {
		return Identity{}, ErrInvalidCredentials
	}
	id := uuid.NewSHA1(uuid.NameSpaceOID, []byte(username)).String()
	return Identity{PlayerID: id, Username: username}, nil
}

func (p *LocalProvider) SignOut(ctx context.Context) error {
	return ctx.Err()
}
