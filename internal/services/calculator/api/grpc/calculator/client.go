package calculator

import (
	"context"

	"github.com/louisbranch/mysticnumbers/internal/interpretation"
	apperrors "github.com/louisbranch/mysticnumbers/internal/platform/errors"
	"github.com/louisbranch/mysticnumbers/internal/services/calculator/domain"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls a remote calculator. It implements domain.Calculator.
type Client struct {
	conn grpc.ClientConnInterface
}

var _ domain.Calculator = (*Client)(nil)

// NewClient returns a client using conn.
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// ComputeProfile computes a profile remotely.
func (c *Client) ComputeProfile(ctx context.Context, in domain.ProfileInput) (domain.ProfileView, error) {
	var out domain.ProfileView
	err := c.invoke(ctx, ComputeProfileFullMethod, profileRequest{
		BirthDate:   in.BirthDate,
		Name:        in.Name,
		Locale:      in.Locale,
		KeepMasters: in.KeepMasters,
	}, &out)
	return out, err
}

// Reduce reduces a number remotely.
func (c *Client) Reduce(ctx context.Context, in domain.ReduceInput) (domain.ReductionView, error) {
	var out domain.ReductionView
	if err := checkWireNumber(in.Number); err != nil {
		return out, err
	}
	err := c.invoke(ctx, ReduceFullMethod, reduceRequest{Number: in.Number, KeepMasters: in.KeepMasters}, &out)
	return out, err
}

// Describe looks up an interpretation remotely.
func (c *Client) Describe(ctx context.Context, in domain.DescribeInput) (interpretation.Interpretation, error) {
	var out interpretation.Interpretation
	if err := checkWireNumber(in.Number); err != nil {
		return out, err
	}
	err := c.invoke(ctx, DescribeFullMethod, describeRequest{
		Category: in.Category,
		Number:   in.Number,
		Locale:   in.Locale,
	}, &out)
	return out, err
}

// Locales lists the remote calculator's locales.
func (c *Client) Locales(ctx context.Context) ([]domain.LocaleView, error) {
	var out localesResponse
	if err := c.invoke(ctx, LocalesFullMethod, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Locales, nil
}

func (c *Client) invoke(ctx context.Context, method string, req any, out any) error {
	in, err := encodeStruct(req)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeRequestInvalid, "encode request", err)
	}
	resp := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, method, in, resp); err != nil {
		return remoteError(err)
	}
	if err := decodeStruct(resp, out); err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "decode response", err)
	}
	return nil
}

// remoteError rebuilds the coded error carried by a status.
func remoteError(err error) error {
	appErr, _ := apperrors.FromGRPCStatus(err)
	appErr.Cause = err
	return appErr
}
