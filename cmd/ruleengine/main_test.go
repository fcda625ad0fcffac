package main

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/open-regels/ruleengine/internal/config"
)

func TestDiffResults(t *testing.T) {
	Convey("diffResults compares two evaluation result documents", t, func() {
		dir := t.TempDir()

		a := filepath.Join(dir, "a.json")
		b := filepath.Join(dir, "b.json")

		err := os.WriteFile(a, []byte(`{"output": {"benefit_amount": 100}}`), 0o644)
		So(err, ShouldBeNil)

		Convey("identical files report no change", func() {
			err := os.WriteFile(b, []byte(`{"output": {"benefit_amount": 100}}`), 0o644)
			So(err, ShouldBeNil)

			_, changed, err := diffResults(a, b)
			So(err, ShouldBeNil)
			So(changed, ShouldBeFalse)
		})

		Convey("a changed output value is reported", func() {
			err := os.WriteFile(b, []byte(`{"output": {"benefit_amount": 250}}`), 0o644)
			So(err, ShouldBeNil)

			report, changed, err := diffResults(a, b)
			So(err, ShouldBeNil)
			So(changed, ShouldBeTrue)
			So(len(report), ShouldBeGreaterThan, 0)
		})

		Convey("a missing file surfaces as an error", func() {
			_, _, err := diffResults(a, filepath.Join(dir, "missing.json"))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestDecodeJSONFlag(t *testing.T) {
	Convey("decodeJSONFlag", t, func() {
		Convey("an empty flag leaves the target untouched", func() {
			var out map[string]interface{}
			err := decodeJSONFlag("", &out)
			So(err, ShouldBeNil)
			So(out, ShouldBeNil)
		})

		Convey("a JSON object decodes into the target", func() {
			var out map[string]interface{}
			err := decodeJSONFlag(`{"field": 42}`, &out)
			So(err, ShouldBeNil)
			So(out["field"], ShouldEqual, 42)
		})

		Convey("malformed JSON is reported as an error", func() {
			var out map[string]interface{}
			err := decodeJSONFlag(`{not json`, &out)
			So(err, ShouldNotBeNil)
		})
	})
}

func TestBuildProvider(t *testing.T) {
	Convey("buildProvider rejects an unrecognized backend", t, func() {
		cfg := config.Default()
		cfg.Provider.Backend = "carrier-pigeon"

		_, err := buildProvider(cfg)
		So(err, ShouldNotBeNil)
	})

	Convey("buildProvider returns no provider for the default backend", t, func() {
		cfg := config.Default()

		provider, err := buildProvider(cfg)
		So(err, ShouldBeNil)
		So(provider, ShouldBeNil)
	})

	Convey("buildProvider constructs a vault provider from the configured address and token", t, func() {
		cfg := config.Default()
		cfg.Provider.Backend = "vault"
		cfg.Provider.VaultAddr = "https://vault.example.com:8200"
		cfg.Provider.VaultToken = "s.faketoken"

		provider, err := buildProvider(cfg)
		So(err, ShouldBeNil)
		So(provider, ShouldNotBeNil)
	})

	Convey("buildProvider rejects a malformed vault address", t, func() {
		cfg := config.Default()
		cfg.Provider.Backend = "vault"
		cfg.Provider.VaultAddr = "://not-a-url"

		_, err := buildProvider(cfg)
		So(err, ShouldNotBeNil)
	})
}
