package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"

	"github.com/okian/museumguide/internal/adapters/museum"

	. "github.com/smartystreets/goconvey/convey"
)

func TestErrors(t *testing.T) {
	Convey("Given API error helpers", t, func() {
		cause := errors.New("status 503")

		Convey("When wrapping with a kind", func() {
			err := WrapKind("api.medium", ErrLookup, cause)

			Convey("Then both kind and cause match", func() {
				So(errors.Is(err, ErrLookup), ShouldBeTrue)
				So(errors.Is(err, cause), ShouldBeTrue)
				So(err.Error(), ShouldEqual, "api.medium: lookup failed: status 503")
				So(message(err), ShouldEqual, "lookup failed")
			})
		})

		Convey("When a lookup fails with a museum error carrying the request URL", func() {
			transport := &url.Error{Op: "Get", URL: "http://museum/object/1?apikey=hidden-key", Err: errors.New("refused")}
			err := WrapKind("api.medium", ErrLookup, fmt.Errorf("%w: execute request: %w", museum.ErrUpstream, transport))

			Convey("Then only the kind and the museum sentinel are shown in-band", func() {
				So(message(err), ShouldEqual, "lookup failed: museum api failed")
				So(message(err), ShouldNotContainSubstring, "hidden-key")
				So(err.Error(), ShouldContainSubstring, "refused")
			})
		})

		Convey("When a lookup is cut short by the deadline", func() {
			err := WrapKind("api.medium", ErrLookup, fmt.Errorf("fetch: %w", context.DeadlineExceeded))
			So(message(err), ShouldEqual, "lookup failed: context deadline exceeded")
		})

		Convey("When a request error carries a cause", func() {
			err := WrapKind("api.medium", ErrMissingTitle, cause)

			Convey("Then only the kind is shown in-band", func() {
				So(message(err), ShouldEqual, "missing painting_to_search")
				So(err.Error(), ShouldContainSubstring, "status 503")
			})
		})

		Convey("When creating a bare kind", func() {
			err := NewKind("api.medium", ErrMethodNotAllowed)
			So(errors.Is(err, ErrMethodNotAllowed), ShouldBeTrue)
			So(err.Error(), ShouldEqual, "api.medium: method not allowed")
		})

		Convey("When classifying errors", func() {
			So(errorKind(NewKind("op", ErrMissingTitle)), ShouldEqual, "missing_title")
			So(errorKind(WrapKind("op", ErrLookup, cause)), ShouldEqual, "lookup")
			So(errorKind(cause), ShouldEqual, "internal")
		})
	})
}
