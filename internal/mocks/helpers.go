package mocks

import (
	"testing"

	"go.uber.org/mock/gomock"
)

// NewMockWalletProviderForTest creates a new mock WalletProvider for testing
func NewMockWalletProviderForTest(t *testing.T) *MockWalletProvider {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockWalletProvider(ctrl)
}

// NewMockDelegatedClientForTest creates a new mock DelegatedClient for testing
func NewMockDelegatedClientForTest(t *testing.T) *MockDelegatedClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockDelegatedClient(ctrl)
}

// NewMockReceiptSourceForTest creates a new mock ReceiptSource for testing
func NewMockReceiptSourceForTest(t *testing.T) *MockReceiptSource {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockReceiptSource(ctrl)
}

// NewMockContractReaderForTest creates a new mock ContractReader for testing
func NewMockContractReaderForTest(t *testing.T) *MockContractReader {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return NewMockContractReader(ctrl)
}
