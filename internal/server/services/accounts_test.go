package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/eventportal/internal/common"
	"github.com/dmitrijs2005/eventportal/internal/server/models"
	"github.com/dmitrijs2005/eventportal/internal/server/otp"
	"github.com/dmitrijs2005/eventportal/internal/server/passwords"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountFixture struct {
	svc    *AccountService
	repo   *memAccounts
	hasher *plainHasher
	sender *recordingSender
	log    *captureLogger
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	f := &accountFixture{
		repo:   newMemAccounts(),
		hasher: &plainHasher{},
		sender: &recordingSender{},
		log:    newCaptureLogger(),
	}
	f.svc = NewAccountService(&fakeRepoMgr{accounts: f.repo}, f.hasher, otp.Fixed("123456"), f.sender, f.log, 0)
	return f
}

func TestSignup_CreatesInactiveStudentAndSendsCode(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, SignupMessage, msg)

	u, err := f.repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a", u.UserName)
	assert.Equal(t, models.RoleStudent, u.Role)
	assert.False(t, u.IsActive)
	require.NotNil(t, u.OtpCode)
	assert.Equal(t, "123456", *u.OtpCode)
	assert.Equal(t, "h:pw1", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())

	require.Len(t, f.sender.sent, 1)
	assert.Equal(t, "a@x.com", f.sender.sent[0].To)
	assert.Contains(t, f.sender.sent[0].Body, "123456")
}

func TestSignup_Duplicate(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = f.svc.Signup(ctx, "a@x.com", "other")
	assert.ErrorIs(t, err, common.ErrDuplicateAccount)
	assert.Len(t, f.sender.sent, 1)

	u, _ := f.repo.FindByEmail(ctx, "a@x.com")
	assert.Equal(t, "h:pw1", u.PasswordHash)
}

func TestSignup_InsertRaceReportsDuplicate(t *testing.T) {
	f := newAccountFixture(t)
	f.repo.insertErr = common.ErrDuplicateAccount

	_, err := f.svc.Signup(context.Background(), "a@x.com", "pw1")
	assert.ErrorIs(t, err, common.ErrDuplicateAccount)
}

func TestSignup_DeliveryFailureStillSucceeds(t *testing.T) {
	f := newAccountFixture(t)
	f.sender.err = common.ErrDelivery

	msg, err := f.svc.Signup(context.Background(), "b@x.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, SignupMessage, msg)

	e, ok := f.log.find("warn", "otp delivery failed")
	require.True(t, ok, "delivery failure must be logged")
	assert.Contains(t, e.args, "123456")

	_, err = f.repo.FindByEmail(context.Background(), "b@x.com")
	assert.NoError(t, err)
}

func TestSignup_PasswordTooLong(t *testing.T) {
	f := newAccountFixture(t)
	pw := strings.Repeat("x", passwords.MaxPasswordBytes+1)

	_, err := f.svc.Signup(context.Background(), "a@x.com", pw)
	assert.ErrorIs(t, err, common.ErrPasswordTooLong)

	_, err = f.repo.FindByEmail(context.Background(), "a@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Empty(t, f.sender.sent)
}

func TestSignup_StoreFailures(t *testing.T) {
	f := newAccountFixture(t)
	f.repo.findErr = errBoom
	_, err := f.svc.Signup(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)

	f = newAccountFixture(t)
	f.repo.insertErr = errBoom
	_, err = f.svc.Signup(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)

	f = newAccountFixture(t)
	f.hasher.hashErr = errBoom
	_, err = f.svc.Signup(context.Background(), "a@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrorInternal)
}

func TestVerify(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	_, err := f.svc.Signup(ctx, "a@x.com", "pw")
	require.NoError(t, err)

	_, err = f.svc.Verify(ctx, "a@x.com", "000000")
	assert.ErrorIs(t, err, common.ErrInvalidOtp)
	u, _ := f.repo.FindByEmail(ctx, "a@x.com")
	assert.False(t, u.IsActive)
	require.NotNil(t, u.OtpCode)

	msg, err := f.svc.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.Equal(t, VerifyMessage, msg)
	u, _ = f.repo.FindByEmail(ctx, "a@x.com")
	assert.True(t, u.IsActive)
	assert.Nil(t, u.OtpCode)

	// the code is single use
	_, err = f.svc.Verify(ctx, "a@x.com", "123456")
	assert.ErrorIs(t, err, common.ErrInvalidOtp)
	_, err = f.svc.Verify(ctx, "ghost@x.com", "123456")
	assert.ErrorIs(t, err, common.ErrInvalidOtp)
}

func TestVerify_StoreError(t *testing.T) {
	f := newAccountFixture(t)
	f.repo.activErr = errBoom
	_, err := f.svc.Verify(context.Background(), "a@x.com", "123456")
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrInvalidOtp)
}

func TestLogin_TooLongPasswordSkipsComparison(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	_, err = f.svc.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "a@x.com", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, common.ErrPasswordTooLong)
	assert.Zero(t, f.hasher.verifyCalls)

	_, err = f.svc.Login(ctx, "a@x.com", strings.Repeat("p", 72))
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
	assert.Equal(t, 1, f.hasher.verifyCalls)
}

func TestLogin(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()

	_, err := f.svc.Login(ctx, "nobody@x.com", "pw")
	assert.ErrorIs(t, err, common.ErrUnknownAccount)

	_, err = f.svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "a@x.com", "pw1")
	assert.ErrorIs(t, err, common.ErrAccountNotVerified)

	_, err = f.svc.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "a@x.com", "wrong")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)

	calls := f.hasher.verifyCalls
	_, err = f.svc.Login(ctx, "a@x.com", strings.Repeat("p", 73))
	assert.ErrorIs(t, err, common.ErrPasswordTooLong)
	assert.Equal(t, calls, f.hasher.verifyCalls, "too long password must not reach the hasher")

	pub, err := f.svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "1", pub.ID)
	assert.Equal(t, "a@x.com", pub.Email)
	assert.Equal(t, "a", pub.UserName)
	assert.True(t, pub.IsActive)
}

func TestLogin_InactiveCheckedBeforeLength(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	_, err := f.svc.Signup(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = f.svc.Login(ctx, "a@x.com", strings.Repeat("p", 100))
	assert.ErrorIs(t, err, common.ErrAccountNotVerified)
}

func TestLogin_InternalErrors(t *testing.T) {
	f := newAccountFixture(t)
	ctx := context.Background()
	_, _ = f.svc.Signup(ctx, "a@x.com", "pw1")
	_, _ = f.svc.Verify(ctx, "a@x.com", "123456")

	f.hasher.verifyErr = errBoom
	_, err := f.svc.Login(ctx, "a@x.com", "pw1")
	assert.ErrorIs(t, err, common.ErrAuthenticationInternal)

	f.hasher.verifyErr = nil
	f.repo.findErr = errBoom
	_, err = f.svc.Login(ctx, "a@x.com", "pw1")
	assert.ErrorIs(t, err, common.ErrAuthenticationInternal)
}

func TestLogin_WithBcrypt(t *testing.T) {
	repo := newMemAccounts()
	svc := NewAccountService(&fakeRepoMgr{accounts: repo}, passwords.NewBcryptHasher(4),
		otp.Fixed("654321"), &recordingSender{}, newCaptureLogger(), 0)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "c@x.com", "secret")
	require.NoError(t, err)
	_, err = svc.Verify(ctx, "c@x.com", "654321")
	require.NoError(t, err)

	u, _ := repo.FindByEmail(ctx, "c@x.com")
	assert.NotEqual(t, "secret", u.PasswordHash)

	_, err = svc.Login(ctx, "c@x.com", "secret")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "c@x.com", "Secret")
	assert.ErrorIs(t, err, common.ErrInvalidCredentials)
}
