package test

import (
	"context"

	"github.com/gebeyahq/marketadmin/internal/adapter/chapa"
)

// GatewayStub simulates the payment provider for workflow tests.
type GatewayStub struct {
	InitializeFn func(context.Context, chapa.InitRequest) (*chapa.InitResult, error)
	TransferFn   func(context.Context, chapa.TransferRequest) (*chapa.TransferResult, error)
	RefundFn     func(context.Context, string, chapa.RefundRequest) (chapa.RefundOutcome, error)

	InitCalls     []chapa.InitRequest
	TransferCalls []chapa.TransferRequest
	RefundCalls   []GatewayRefundCall
}

// GatewayRefundCall records a refund invocation.
type GatewayRefundCall struct {
	TxRef   string
	Request chapa.RefundRequest
}

// InitializeTransaction records the call and returns a stub checkout.
func (s *GatewayStub) InitializeTransaction(ctx context.Context, req chapa.InitRequest) (*chapa.InitResult, error) {
	s.InitCalls = append(s.InitCalls, req)
	if s.InitializeFn != nil {
		return s.InitializeFn(ctx, req)
	}
	return &chapa.InitResult{CheckoutURL: "https://checkout.test/" + req.TxRef}, nil
}

// Transfer records the call and returns a stub provider reference.
func (s *GatewayStub) Transfer(ctx context.Context, req chapa.TransferRequest) (*chapa.TransferResult, error) {
	s.TransferCalls = append(s.TransferCalls, req)
	if s.TransferFn != nil {
		return s.TransferFn(ctx, req)
	}
	return &chapa.TransferResult{ProviderRef: "transfer-" + req.Reference}, nil
}

// Refund records the call and reports success unless overridden.
func (s *GatewayStub) Refund(ctx context.Context, txRef string, req chapa.RefundRequest) (chapa.RefundOutcome, error) {
	s.RefundCalls = append(s.RefundCalls, GatewayRefundCall{TxRef: txRef, Request: req})
	if s.RefundFn != nil {
		return s.RefundFn(ctx, txRef, req)
	}
	return chapa.RefundSucceeded, nil
}

var _ chapa.Client = (*GatewayStub)(nil)
