// Package domain defines the core domain models for console-gate.
package domain

import "encoding/json"

// InstanceProfile is the resource shape of one instance type.
type InstanceProfile struct {
	CPU    int
	Memory int
	Disk   int
}

// MarshalJSON encodes the profile as the [cpu, memory, disk] triple
// the console UI consumes.
func (p InstanceProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{p.CPU, p.Memory, p.Disk})
}

// UnmarshalJSON decodes the [cpu, memory, disk] triple.
func (p *InstanceProfile) UnmarshalJSON(data []byte) error {
	var triple [3]int
	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}
	p.CPU, p.Memory, p.Disk = triple[0], triple[1], triple[2]
	return nil
}

// GlobalInfo is the read-only deployment metadata bundled into login
// and session responses. It is derived from configuration on every
// request and carries no mutable state.
type GlobalInfo struct {
	Version         string                     `json:"version"`
	Language        string                     `json:"language"`
	AdminConsoleURL string                     `json:"admin_console_url"`
	HelpURL         string                     `json:"help_url"`
	AdminSupportURL string                     `json:"admin_support_url"`
	InstanceTypes   map[string]InstanceProfile `json:"instance_type"`
}
