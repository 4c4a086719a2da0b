package compose

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// mergeKey is the YAML merge key used with anchors ("<<: *defaults").
const mergeKey = "<<"

// rawService mirrors the fields of a service entry that the diagram uses.
// Polymorphic fields are kept as nodes and normalized afterwards.
type rawService struct {
	Image       string      `yaml:"image"`
	Command     yaml.Node   `yaml:"command"`
	Environment yaml.Node   `yaml:"environment"`
	Ports       []yaml.Node `yaml:"ports"`
	Volumes     []yaml.Node `yaml:"volumes"`
	DependsOn   yaml.Node   `yaml:"depends_on"`
	Networks    yaml.Node   `yaml:"networks"`
}

// longPort is the long port syntax ("target: 80, published: 8080").
type longPort struct {
	Target    string `yaml:"target"`
	Published string `yaml:"published"`
	HostIP    string `yaml:"host_ip"`
	Protocol  string `yaml:"protocol"`
}

// longVolume is the long volume syntax ("type: bind, source: ., target: /app").
type longVolume struct {
	Source string `yaml:"source"`
	Target string `yaml:"target"`
}

// Parse walks a compose manifest and returns its services in file order.
// Service identifiers are assigned sequentially (container_1, container_2, ...).
// YAML anchors and merge keys are resolved.
func Parse(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, NewParseError("", err.Error(), ErrInvalidYAML)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmptyInput
	}
	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, NewParseError("", "manifest root must be a mapping", ErrInvalidYAML)
	}

	top := mappingPairs(root)
	servicesNode, ok := lookup(top, "services")
	if !ok || servicesNode.Kind != yaml.MappingNode {
		return nil, NewParseError("services", ErrNoServices.Error(), ErrNoServices)
	}

	m := &Manifest{}
	if networks, ok := lookup(top, "networks"); ok {
		m.Networks = names(networks)
	}

	for i, pair := range mappingPairs(servicesNode) {
		svc, err := parseService(pair.key, pair.value)
		if err != nil {
			return nil, err
		}
		svc.ID = ServiceID(i + 1)
		m.Services = append(m.Services, svc)
	}
	return m, nil
}

func parseService(name string, node *yaml.Node) (Service, error) {
	field := "services." + name
	svc := Service{Name: name}

	node = resolve(node)
	if isNull(node) {
		return svc, nil
	}
	if node.Kind != yaml.MappingNode {
		return Service{}, NewParseError(field, "service definition must be a mapping", ErrInvalidService)
	}

	var raw rawService
	if err := node.Decode(&raw); err != nil {
		return Service{}, NewParseError(field, err.Error(), ErrInvalidService)
	}

	svc.Image = raw.Image
	svc.Command = command(&raw.Command)
	svc.Environment = environment(&raw.Environment)
	svc.DependsOn = names(&raw.DependsOn)
	svc.Networks = names(&raw.Networks)

	for i := range raw.Ports {
		port, err := portString(&raw.Ports[i])
		if err != nil {
			return Service{}, NewParseError(fmt.Sprintf("%s.ports[%d]", field, i), err.Error(), ErrInvalidService)
		}
		svc.Ports = append(svc.Ports, port)
	}
	for i := range raw.Volumes {
		vol, err := volumeString(&raw.Volumes[i])
		if err != nil {
			return Service{}, NewParseError(fmt.Sprintf("%s.volumes[%d]", field, i), err.Error(), ErrInvalidService)
		}
		svc.Volumes = append(svc.Volumes, vol)
	}
	return svc, nil
}

// command accepts both the string and the list form.
func command(n *yaml.Node) string {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if isNull(n) {
			return ""
		}
		return n.Value
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			parts = append(parts, resolve(c).Value)
		}
		return strings.Join(parts, " ")
	}
	return ""
}

// environment accepts both the mapping form and the KEY=VALUE list form.
func environment(n *yaml.Node) map[string]string {
	n = resolve(n)
	switch n.Kind {
	case yaml.MappingNode:
		env := make(map[string]string)
		for _, p := range mappingPairs(n) {
			if isNull(p.value) {
				env[p.key] = ""
				continue
			}
			env[p.key] = p.value.Value
		}
		return env
	case yaml.SequenceNode:
		env := make(map[string]string)
		for _, c := range n.Content {
			key, value, _ := strings.Cut(resolve(c).Value, "=")
			env[key] = value
		}
		return env
	}
	return nil
}

// names returns list entries or mapping keys, the two shapes used by
// depends_on and networks.
func names(n *yaml.Node) []string {
	n = resolve(n)
	var out []string
	switch n.Kind {
	case yaml.SequenceNode:
		for _, c := range n.Content {
			if c = resolve(c); c.Kind == yaml.ScalarNode && !isNull(c) {
				out = append(out, c.Value)
			}
		}
	case yaml.MappingNode:
		for _, p := range mappingPairs(n) {
			out = append(out, p.key)
		}
	}
	return out
}

// portString keeps short-syntax ports verbatim and renders the long syntax
// back into "[host_ip:][published:]target[/protocol]".
func portString(n *yaml.Node) (string, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.MappingNode:
		var p longPort
		if err := n.Decode(&p); err != nil {
			return "", err
		}
		if p.Target == "" {
			return "", fmt.Errorf("port mapping requires a target")
		}
		var b strings.Builder
		if p.HostIP != "" {
			b.WriteString(p.HostIP + ":")
		}
		if p.Published != "" {
			b.WriteString(p.Published + ":")
		}
		b.WriteString(p.Target)
		if p.Protocol != "" {
			b.WriteString("/" + p.Protocol)
		}
		return b.String(), nil
	}
	return "", fmt.Errorf("unsupported port declaration")
}

func volumeString(n *yaml.Node) (string, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil
	case yaml.MappingNode:
		var v longVolume
		if err := n.Decode(&v); err != nil {
			return "", err
		}
		if v.Source == "" {
			return v.Target, nil
		}
		return v.Source + ":" + v.Target, nil
	}
	return "", fmt.Errorf("unsupported volume declaration")
}

type pair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns the key/value pairs of a mapping in document order,
// expanding merge keys. Explicit keys win over merged ones.
func mappingPairs(n *yaml.Node) []pair {
	var explicit, merged []pair
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Value != mergeKey {
			explicit = append(explicit, pair{key: k.Value, value: v})
			continue
		}
		v = resolve(v)
		switch v.Kind {
		case yaml.MappingNode:
			merged = append(merged, mappingPairs(v)...)
		case yaml.SequenceNode:
			for _, c := range v.Content {
				if c = resolve(c); c.Kind == yaml.MappingNode {
					merged = append(merged, mappingPairs(c)...)
				}
			}
		}
	}

	seen := make(map[string]bool, len(explicit)+len(merged))
	out := make([]pair, 0, len(explicit)+len(merged))
	for _, p := range append(explicit, merged...) {
		if seen[p.key] {
			continue
		}
		seen[p.key] = true
		out = append(out, p)
	}
	return out
}

func lookup(pairs []pair, key string) (*yaml.Node, bool) {
	for _, p := range pairs {
		if p.key == key {
			return resolve(p.value), true
		}
	}
	return nil, false
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	if n == nil {
		return &yaml.Node{}
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}
