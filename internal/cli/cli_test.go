package cli_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"resto/config"
	"resto/internal/cli"
	"resto/internal/domains/user/model/dto"
	"resto/shared/constant"
)

type creatorStub struct {
	calls []dto.CreateUserRequest
	actor string
	err   error
}

func (c *creatorStub) Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	c.calls = append(c.calls, req)
	c.actor, _ = ctx.Value(constant.ContextKeyUserID).(string)

	if c.err != nil {
		return dto.UserResponse{}, c.err
	}

	return dto.UserResponse{ID: "u-1", Email: req.Email, Role: req.Role}, nil
}

func TestCreateAdminCmd(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		createErr  error
		wantErr    bool
		wantCalls  int
		wantOutput string
	}{
		{
			name:       "creates a superadmin by default",
			args:       []string{"--email", "owner@resto.test", "--password", "s3cretpass", "--name", "Owner"},
			wantCalls:  1,
			wantOutput: "Created superadmin owner@resto.test (u-1)\n",
		},
		{
			name:       "honours the role flag",
			args:       []string{"--email", "staff@resto.test", "--password", "s3cretpass", "--role", "admin"},
			wantCalls:  1,
			wantOutput: "Created admin staff@resto.test (u-1)\n",
		},
		{
			name:    "requires email",
			args:    []string{"--password", "s3cretpass"},
			wantErr: true,
		},
		{
			name:    "rejects short password",
			args:    []string{"--email", "owner@resto.test", "--password", "short"},
			wantErr: true,
		},
		{
			name:    "rejects unknown role",
			args:    []string{"--email", "owner@resto.test", "--password", "s3cretpass", "--role", "chef"},
			wantErr: true,
		},
		{
			name:      "surfaces service errors",
			args:      []string{"--email", "owner@resto.test", "--password", "s3cretpass"},
			createErr: errors.New("email already registered"),
			wantErr:   true,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &creatorStub{err: tt.createErr}
			cmd := cli.CreateAdminCmd(func() cli.AdminCreator { return stub })

			out := &bytes.Buffer{}
			cmd.SetOut(out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Len(t, stub.calls, tt.wantCalls)

			if tt.wantOutput != "" {
				assert.Equal(t, tt.wantOutput, out.String())
				assert.Equal(t, constant.ContextInternal, stub.actor)
			}
		})
	}
}

func TestMigrationCmds(t *testing.T) {
	commands := cli.MigrationCmds(func() *config.Config { return &config.Config{} })

	names := make([]string, 0, len(commands))
	for _, cmd := range commands {
		names = append(names, cmd.Name())
	}

	assert.Equal(t, []string{"up", "down", "step-up", "drop"}, names)
}

func TestMigrateCmd_Force(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "missing version", args: []string{"force"}},
		{name: "non numeric version", args: []string{"force", "latest"}},
		{name: "below nil version", args: []string{"force", "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := cli.MigrateCmd(func() *config.Config { return &config.Config{} })
			cmd.SetArgs(tt.args)
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})

			assert.Error(t, cmd.Execute())
		})
	}
}
