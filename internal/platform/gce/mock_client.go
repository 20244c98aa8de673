package gce

import (
	"context"
	"fmt"

	"cloud.google.com/go/compute/apiv1/computepb"
	"google.golang.org/protobuf/proto"
)

// MockClient is a mock implementation of ComputeManager for testing.
// Each method delegates to an optional Func field; unset fields fall back
// to a sensible default.
type MockClient struct {
	CreateInstanceFunc      func(ctx context.Context, opts InstanceCreateOpts) (*computepb.Instance, error)
	GetInstanceFunc         func(ctx context.Context, zone, name string) (*computepb.Instance, error)
	DeleteInstanceFunc      func(ctx context.Context, zone, name string) error
	GetInstanceIPFunc       func(ctx context.Context, zone, name string) (string, error)
	GetImageFromFamilyFunc  func(ctx context.Context, imageProject, family string) (*computepb.Image, error)
	SetInstanceMetadataFunc func(ctx context.Context, zone, name string, entries map[string]string) error
	CloseFunc               func() error
}

// NewMockClient creates a new mock compute client.
func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) CreateInstance(ctx context.Context, opts InstanceCreateOpts) (*computepb.Instance, error) {
	if m.CreateInstanceFunc != nil {
		return m.CreateInstanceFunc(ctx, opts)
	}
	return &computepb.Instance{
		Name:   proto.String(opts.Name),
		Status: proto.String("RUNNING"),
		NetworkInterfaces: []*computepb.NetworkInterface{
			{
				NetworkIP: proto.String("10.0.0.2"),
				AccessConfigs: []*computepb.AccessConfig{
					{NatIP: proto.String("203.0.113.10")},
				},
			},
		},
	}, nil
}

func (m *MockClient) GetInstance(ctx context.Context, zone, name string) (*computepb.Instance, error) {
	if m.GetInstanceFunc != nil {
		return m.GetInstanceFunc(ctx, zone, name)
	}
	return &computepb.Instance{
		Name:   proto.String(name),
		Status: proto.String("RUNNING"),
	}, nil
}

func (m *MockClient) DeleteInstance(ctx context.Context, zone, name string) error {
	if m.DeleteInstanceFunc != nil {
		return m.DeleteInstanceFunc(ctx, zone, name)
	}
	return nil
}

func (m *MockClient) GetInstanceIP(ctx context.Context, zone, name string) (string, error) {
	if m.GetInstanceIPFunc != nil {
		return m.GetInstanceIPFunc(ctx, zone, name)
	}
	return "203.0.113.10", nil
}

func (m *MockClient) GetImageFromFamily(ctx context.Context, imageProject, family string) (*computepb.Image, error) {
	if m.GetImageFromFamilyFunc != nil {
		return m.GetImageFromFamilyFunc(ctx, imageProject, family)
	}
	return &computepb.Image{
		Name:     proto.String(family + "-v20240101"),
		SelfLink: proto.String(fmt.Sprintf("projects/%s/global/images/%s-v20240101", imageProject, family)),
	}, nil
}

func (m *MockClient) SetInstanceMetadata(ctx context.Context, zone, name string, entries map[string]string) error {
	if m.SetInstanceMetadataFunc != nil {
		return m.SetInstanceMetadataFunc(ctx, zone, name, entries)
	}
	return nil
}

func (m *MockClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
