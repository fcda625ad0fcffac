package providers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestFileProviderGetValue(t *testing.T) {
	Convey("FileProvider.GetValue", t, func() {
		dir := t.TempDir()
		fixture := filepath.Join(dir, "fixtures.json")
		err := os.WriteFile(fixture, []byte(`{
			"UWV.wia": {"income": 2100.5, "thresholds": {"lower": 1200}}
		}`), 0o644)
		So(err, ShouldBeNil)

		provider, err := NewFileProvider("2024-01-01", fixture)
		So(err, ShouldBeNil)
		So(provider.ReferenceDate(), ShouldEqual, "2024-01-01")

		Convey("resolves a top-level field", func() {
			v, err := provider.GetValue(context.Background(), "UWV", "wia", "income", nil, nil, nil)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 2100.5)
		})

		Convey("resolves a nested field via a JMESPath expression", func() {
			v, err := provider.GetValue(context.Background(), "UWV", "wia", "thresholds.lower", nil, nil, nil)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 1200.0)
		})

		Convey("returns nil without error for a law with no fixture", func() {
			v, err := provider.GetValue(context.Background(), "UWV", "ghost", "income", nil, nil, nil)
			So(err, ShouldBeNil)
			So(v, ShouldBeNil)
		})
	})

	Convey("NewFileProvider errors on a missing fixture file", t, func() {
		_, err := NewFileProvider("2024-01-01", "/nonexistent/path.json")
		So(err, ShouldNotBeNil)
	})
}
