package receiptparse_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReceiptParse(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Receipt Parse Suite")
}
