package environment

import (
	"io"

	"gopkg.in/yaml.v3"
)

// IsolationKind values. The protocol does not require an environment to
// support every kind; an environment that receives a Spec naming a kind
// it cannot provide returns ErrorProvisionFailed.
const (
	IsolationProcess       IsolationKind = "process"
	IsolationContainer     IsolationKind = "container"
	IsolationGvisor        IsolationKind = "gvisor"
	IsolationMicroVM       IsolationKind = "micro_vm"
	IsolationWasm          IsolationKind = "wasm"
	IsolationNetworkPolicy IsolationKind = "network_policy"
	IsolationCustom        IsolationKind = "custom"
)

// CredentialInjection values.
const (
	InjectEnvVar  CredentialInjection = "env_var"
	InjectFile    CredentialInjection = "file"
	InjectSidecar CredentialInjection = "sidecar"
)

// NetworkAction values.
const (
	NetworkAllow NetworkAction = "allow"
	NetworkDeny  NetworkAction = "deny"
)

// NewSpec returns a Spec requesting isolation with no credentials, no
// resource limits, and a default-deny network policy. Use this instead of
// a struct literal so new optional fields added to Spec in a later minor
// version do not break call sites.
func NewSpec(isolation IsolationKind) Spec {
	return Spec{
		Isolation: isolation,
		Network:   NetworkPolicy{DefaultAction: NetworkDeny},
	}
}

// specYAML mirrors Spec's shape for YAML decoding; Spec itself is not
// tagged so the in-memory type stays free of wire-format concerns.
type specYAML struct {
	Isolation   string `yaml:"isolation"`
	Credentials []struct {
		Name      string `yaml:"name"`
		Injection string `yaml:"injection"`
		SourceRef string `yaml:"source_ref"`
	} `yaml:"credentials"`
	Limits struct {
		CPUMillicores int64 `yaml:"cpu_millicores"`
		MemoryBytes   int64 `yaml:"memory_bytes"`
		DiskBytes     int64 `yaml:"disk_bytes"`
		GPUCount      int   `yaml:"gpu_count"`
	} `yaml:"limits"`
	Network struct {
		DefaultAction string `yaml:"default_action"`
		Rules         []struct {
			CIDR   string `yaml:"cidr"`
			Action string `yaml:"action"`
		} `yaml:"rules"`
	} `yaml:"network"`
}

// LoadSpecYAML reads a Spec from its YAML representation, the format the
// reference bundle's example wiring and the demo binary's configuration
// use to describe an environment without recompiling.
func LoadSpecYAML(r io.Reader) (Spec, error) {
	var wire specYAML
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&wire); err != nil {
		return Spec{}, err
	}

	spec := NewSpec(IsolationKind(wire.Isolation))
	for _, c := range wire.Credentials {
		spec.Credentials = append(spec.Credentials, CredentialRef{
			Name:      c.Name,
			Injection: CredentialInjection(c.Injection),
			SourceRef: c.SourceRef,
		})
	}
	spec.Limits = ResourceLimits{
		CPUMillicores: wire.Limits.CPUMillicores,
		MemoryBytes:   wire.Limits.MemoryBytes,
		DiskBytes:     wire.Limits.DiskBytes,
		GPUCount:      wire.Limits.GPUCount,
	}
	if wire.Network.DefaultAction != "" {
		spec.Network.DefaultAction = NetworkAction(wire.Network.DefaultAction)
	}
	for _, r := range wire.Network.Rules {
		spec.Network.Rules = append(spec.Network.Rules, NetworkRule{
			CIDR:   r.CIDR,
			Action: NetworkAction(r.Action),
		})
	}
	return spec, nil
}
