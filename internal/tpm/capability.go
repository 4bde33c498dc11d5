package tpm

import (
	"fmt"

	"github.com/google/go-tpm/tpm2"
)

// PropertyTag identifies a TPM property (TPM_PT)
type PropertyTag uint32

// Variable property tags, Part 2: Structures, section 6.13
const (
	PTVar             PropertyTag = 0x00000200
	PTPermanent       PropertyTag = PTVar + 0
	PTLockoutCounter  PropertyTag = PTVar + 14
	PTMaxAuthFail     PropertyTag = PTVar + 15
	PTLockoutInterval PropertyTag = PTVar + 16
	PTLockoutRecovery PropertyTag = PTVar + 17
)

// MaxTPMProperties is TPM_MAX_TPM_PROPERTIES for a 1024 byte capability
// buffer: (1024 - sizeof(TPM_CAP) - sizeof(UINT32)) / sizeof(TPMS_TAGGED_PROPERTY)
const MaxTPMProperties = 127

// PermanentLockoutAuthSet is the lockoutAuthSet bit of TPMA_PERMANENT
const PermanentLockoutAuthSet uint32 = 1 << 2

func (p PropertyTag) String() string {
	switch p {
	case PTPermanent:
		return "TPM_PT_PERMANENT"
	case PTLockoutCounter:
		return "TPM_PT_LOCKOUT_COUNTER"
	case PTMaxAuthFail:
		return "TPM_PT_MAX_AUTH_FAIL"
	case PTLockoutInterval:
		return "TPM_PT_LOCKOUT_INTERVAL"
	case PTLockoutRecovery:
		return "TPM_PT_LOCKOUT_RECOVERY"
	default:
		return fmt.Sprintf("TPM_PT(0x%08x)", uint32(p))
	}
}

// Property is one tagged property value
type Property struct {
	Tag   PropertyTag
	Value uint32
}

// CapabilitySet holds properties in the order the TPM returned them
type CapabilitySet []Property

// Lookup returns the value of the first property tagged tag
func (c CapabilitySet) Lookup(tag PropertyTag) (uint32, bool) {
	for _, p := range c {
		if p.Tag == tag {
			return p.Value, true
		}
	}
	return 0, false
}

// VariableProperties reads the whole PT_VAR group in a single
// TPM2_GetCapability call.
func (c *Context) VariableProperties() (CapabilitySet, error) {
	t, err := c.tpm()
	if err != nil {
		return nil, err
	}

	cmd := tpm2.GetCapability{
		Capability:    tpm2.TPMCapTPMProperties,
		Property:      uint32(PTVar),
		PropertyCount: MaxTPMProperties,
	}
	rsp, err := cmd.Execute(t)
	if err != nil {
		return nil, fmt.Errorf("get capability: %w", err)
	}

	props, err := rsp.CapabilityData.Data.TPMProperties()
	if err != nil {
		return nil, fmt.Errorf("get capability: %w", err)
	}

	caps := make(CapabilitySet, 0, len(props.TPMProperty))
	for _, p := range props.TPMProperty {
		caps = append(caps, Property{Tag: PropertyTag(p.Property), Value: p.Value})
	}
	return caps, nil
}
