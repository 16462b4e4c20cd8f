package cli

import (
	"bytes"
	"context"

	"github.com/dmitrijs2005/gophwallet/internal/client/models"
)

type fakeAuth struct {
	loginAccount  string
	loginOperator bool
	loginSecret   string
	loginErr      error

	loggedOut bool
	pingErr   error
}

func (f *fakeAuth) Login(ctx context.Context, account string, operator bool, secret []byte) (*models.Session, error) {
	f.loginAccount, f.loginOperator, f.loginSecret = account, operator, string(secret)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.Session{Account: account, AccessToken: "t", Operator: operator}, nil
}
func (f *fakeAuth) Restore(ctx context.Context) (*models.Session, error) { return nil, nil }
func (f *fakeAuth) Logout(ctx context.Context) error                    { f.loggedOut = true; return nil }
func (f *fakeAuth) Ping(ctx context.Context) error                      { return f.pingErr }
func (f *fakeAuth) Close(ctx context.Context) error                     { return nil }

type fakeWallet struct {
	method string
	args   map[string]any

	receipt *models.Receipt
	events  []models.Event
	height  uint64
	mined   uint64
	history []models.Receipt
	limit   int
	err     error
}

func (f *fakeWallet) Execute(ctx context.Context, method string, args map[string]any) (*models.Receipt, error) {
	f.method, f.args = method, args
	return f.receipt, f.err
}
func (f *fakeWallet) CallEvents(ctx context.Context, callID string) ([]models.Event, error) {
	return f.events, f.err
}
func (f *fakeWallet) MineBlocks(ctx context.Context, count uint64) (uint64, error) {
	f.mined = count
	return f.height, f.err
}
func (f *fakeWallet) History(ctx context.Context, limit int) ([]models.Receipt, error) {
	f.limit = limit
	return f.history, f.err
}
func (f *fakeWallet) Receipt(ctx context.Context, callID string) (*models.Receipt, error) {
	return nil, f.err
}

func newTestApp() (*App, *fakeAuth, *fakeWallet, *bytes.Buffer) {
	fa, fw := &fakeAuth{}, &fakeWallet{}
	var out bytes.Buffer
	return &App{authService: fa, walletService: fw, out: &out}, fa, fw, &out
}
