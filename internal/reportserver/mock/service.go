package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/openkcm/rs-cli/internal/reportserver"
)

// Call is one operation received by the in-memory report server
type Call struct {
	Operation string
	Path      string
}

// InMemoryReportServer stands in for a report server catalog. Unknown paths
// fail with the same fault the real service returns for rsItemNotFound.
type InMemoryReportServer struct {
	mu sync.Mutex

	items       map[string]struct{}
	dataSources map[string]reportserver.DataSourceDefinition
	policies    map[string][]reportserver.Policy
	inherit     map[string]bool
	failures    map[string]error
	calls       []Call
}

// NewInMemoryReportServer creates and returns an empty catalog
func NewInMemoryReportServer() *InMemoryReportServer {
	return &InMemoryReportServer{
		items:       make(map[string]struct{}),
		dataSources: make(map[string]reportserver.DataSourceDefinition),
		policies:    make(map[string][]reportserver.Policy),
		inherit:     make(map[string]bool),
		failures:    make(map[string]error),
	}
}

// AddItem registers a catalog item inheriting its policies from the parent
func (s *InMemoryReportServer) AddItem(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addItem(path)
}

// AddDataSource registers a shared data source
func (s *InMemoryReportServer) AddDataSource(path string, definition reportserver.DataSourceDefinition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addItem(path)
	s.dataSources[path] = definition
}

// AddPolicies registers an item with the given policies
func (s *InMemoryReportServer) AddPolicies(path string, policies []reportserver.Policy, inheritParent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.addItem(path)
	s.policies[path] = clonePolicies(policies)
	s.inherit[path] = inheritParent
}

// FailOn makes every later call of operation return err
func (s *InMemoryReportServer) FailOn(operation string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[operation] = err
}

// Calls returns the received operations in order
func (s *InMemoryReportServer) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Call(nil), s.calls...)
}

// Writes counts the received operations that modify the catalog
func (s *InMemoryReportServer) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0

	for _, c := range s.calls {
		switch c.Operation {
		case reportserver.OpSetDataSourceContents, reportserver.OpDeleteItem, reportserver.OpSetPolicies:
			count++
		}
	}

	return count
}

func (s *InMemoryReportServer) GetDataSourceContents(
	_ context.Context,
	path string,
) (*reportserver.DataSourceDefinition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.record(reportserver.OpGetDataSourceContents, path)
	if err != nil {
		return nil, err
	}

	definition, ok := s.dataSources[path]
	if !ok {
		return nil, reportserver.NewItemNotFoundFault(path)
	}

	return &definition, nil
}

func (s *InMemoryReportServer) SetDataSourceContents(
	_ context.Context,
	path string,
	definition *reportserver.DataSourceDefinition,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.record(reportserver.OpSetDataSourceContents, path)
	if err != nil {
		return err
	}

	if _, ok := s.dataSources[path]; !ok {
		return reportserver.NewItemNotFoundFault(path)
	}

	s.dataSources[path] = *definition

	return nil
}

// DeleteItem removes the item and, for folders, everything below it
func (s *InMemoryReportServer) DeleteItem(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.record(reportserver.OpDeleteItem, path)
	if err != nil {
		return err
	}

	if _, ok := s.items[path]; !ok {
		return reportserver.NewItemNotFoundFault(path)
	}

	prefix := strings.TrimRight(path, "/") + "/"

	for item := range s.items {
		if item != path && !strings.HasPrefix(item, prefix) {
			continue
		}

		delete(s.items, item)
		delete(s.dataSources, item)
		delete(s.policies, item)
		delete(s.inherit, item)
	}

	return nil
}

func (s *InMemoryReportServer) GetPolicies(_ context.Context, path string) ([]reportserver.Policy, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.record(reportserver.OpGetPolicies, path)
	if err != nil {
		return nil, false, err
	}

	if _, ok := s.items[path]; !ok {
		return nil, false, reportserver.NewItemNotFoundFault(path)
	}

	return clonePolicies(s.policies[path]), s.inherit[path], nil
}

// SetPolicies replaces the policies of an item and breaks inheritance
func (s *InMemoryReportServer) SetPolicies(_ context.Context, path string, policies []reportserver.Policy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.record(reportserver.OpSetPolicies, path)
	if err != nil {
		return err
	}

	if _, ok := s.items[path]; !ok {
		return reportserver.NewItemNotFoundFault(path)
	}

	s.policies[path] = clonePolicies(policies)
	s.inherit[path] = false

	return nil
}

func (s *InMemoryReportServer) addItem(path string) {
	if _, ok := s.items[path]; ok {
		return
	}

	s.items[path] = struct{}{}
	s.inherit[path] = true
}

func (s *InMemoryReportServer) record(operation, path string) error {
	s.calls = append(s.calls, Call{Operation: operation, Path: path})

	return s.failures[operation]
}

func clonePolicies(policies []reportserver.Policy) []reportserver.Policy {
	if policies == nil {
		return nil
	}

	cloned := make([]reportserver.Policy, len(policies))
	for i, p := range policies {
		cloned[i] = reportserver.Policy{
			GroupUserName: p.GroupUserName,
			Roles:         append([]reportserver.Role(nil), p.Roles...),
		}
	}

	return cloned
}
