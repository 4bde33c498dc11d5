package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dirlock/tpm2-dict-setup/internal/config"
	"github.com/dirlock/tpm2-dict-setup/internal/core/coretest"
	"github.com/dirlock/tpm2-dict-setup/internal/tpm"
)

type run struct {
	code   int
	stdout string
	stderr string
}

func dictSetup(m *coretest.Module, args []string, dryRun bool) run {
	var stdout, stderr bytes.Buffer
	code := DictSetup(args, Options{
		Module: m,
		Config: config.Config{TCTI: tpm.DefaultTCTI},
		DryRun: dryRun,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	return run{code, stdout.String(), stderr.String()}
}

func TestDictSetupCommits(t *testing.T) {
	m := &coretest.Module{
		Caps: tpm.CapabilitySet{{Tag: tpm.PTPermanent, Value: 0}},
	}

	r := dictSetup(m, []string{"10", "3600"}, false)

	assert.Equal(t, 0, r.code)
	assert.Empty(t, r.stdout)
	assert.Empty(t, r.stderr)
	assert.Equal(t, tpm.DefaultTCTI, m.TCTI)
	assert.Equal(t, []coretest.Commit{{MaxTries: 10, RecoveryTime: 3600, LockoutRecovery: 1000}}, m.Commits)
	assert.Equal(t, 1, m.SessionCloses)
	assert.Equal(t, 1, m.TransportCloses)
}

func TestDictSetupAuthProtected(t *testing.T) {
	m := &coretest.Module{
		Caps: tpm.CapabilitySet{{Tag: tpm.PTPermanent, Value: tpm.PermanentLockoutAuthSet}},
	}

	r := dictSetup(m, []string{"5", "600"}, false)

	assert.Equal(t, 1, r.code)
	assert.Empty(t, m.Commits)
	assert.Equal(t, "Error: "+tpm.Describe(tpm.RCAuthMissing)+"\n", r.stdout)
	assert.Equal(t, 1, m.SessionCloses)
	assert.Equal(t, 1, m.TransportCloses)
}

func TestDictSetupInvalidArguments(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		stderr string
	}{
		{"zero max-tries", []string{"0", "100"}, "Error: incorrect value for max-tries '0'\n"},
		{"bad recovery-time", []string{"5", "x"}, "Error: incorrect value for recovery-time 'x'\n"},
		{"overflow", []string{"4294967296", "1"}, "Error: incorrect value for max-tries '4294967296'\n"},
		{"no arguments", nil, UsageLine + "\n"},
		{"too many arguments", []string{"1", "2", "3"}, UsageLine + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &coretest.Module{}

			r := dictSetup(m, tt.args, false)

			assert.Equal(t, 1, r.code)
			assert.Equal(t, tt.stderr, r.stderr)
			assert.Empty(t, r.stdout)
			assert.False(t, m.Contacted())
		})
	}
}

func TestDictSetupTransportFailure(t *testing.T) {
	m := &coretest.Module{OpenErr: errors.New("open device:/dev/tpm0: no such file or directory")}

	r := dictSetup(m, []string{"10", "3600"}, false)

	assert.Equal(t, 1, r.code)
	assert.Equal(t, "Error: cannot open TPM transport: open device:/dev/tpm0: no such file or directory\n", r.stdout)
	assert.Zero(t, m.SessionCloses)
	assert.Zero(t, m.TransportCloses)
}

func TestDictSetupDryRun(t *testing.T) {
	m := &coretest.Module{
		Caps: tpm.CapabilitySet{
			{Tag: tpm.PTMaxAuthFail, Value: 32},
			{Tag: tpm.PTLockoutInterval, Value: 7200},
			{Tag: tpm.PTLockoutRecovery, Value: 86400},
		},
	}

	r := dictSetup(m, []string{"10", "3600"}, true)

	assert.Equal(t, 0, r.code)
	assert.Empty(t, m.Commits)
	assert.Contains(t, r.stdout, "+ max-tries: 10\n")
	assert.Contains(t, r.stdout, "  lockout-recovery: 86400\n")
	assert.Equal(t, 1, m.TransportCloses)
}

func TestDictSetupVerbose(t *testing.T) {
	m := &coretest.Module{QueryErr: errors.New("short read")}
	var stdout, stderr bytes.Buffer

	code := DictSetup([]string{"10", "3600"}, Options{
		Module:  m,
		Config:  config.Config{TCTI: "device:/dev/tpmrm0"},
		Verbose: true,
		Stdout:  &stdout,
		Stderr:  &stderr,
	})

	assert.Equal(t, 1, code)
	assert.True(t, strings.HasPrefix(stderr.String(), "opening device:/dev/tpmrm0\n"))
	assert.Contains(t, stderr.String(), "cannot read TPM properties: short read")
	assert.Equal(t, "Error: cannot read TPM properties: short read\n", stdout.String())
}

func TestDictSetupWarnsOnCloseFailure(t *testing.T) {
	m := &coretest.Module{TransportCloseErr: errors.New("device busy")}

	r := dictSetup(m, []string{"10", "3600"}, false)

	assert.Equal(t, 0, r.code)
	assert.Empty(t, r.stdout)
	assert.Equal(t, "warning: closing transport: device busy\n", r.stderr)
}
