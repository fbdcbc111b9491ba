package review

import (
	"testing"

	"go.uber.org/goleak"
)

// genai pulls in opencensus, whose view worker starts at init.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}
