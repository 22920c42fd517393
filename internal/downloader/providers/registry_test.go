package providers

import (
	"strings"
	"testing"

	"github.com/vrsandeep/comicdl/internal/downloader/providers/getcomics"
)

func TestProviderRegistry(t *testing.T) {
	UnregisterAll()
	t.Cleanup(UnregisterAll)
	Register(getcomics.New())

	t.Run("Get All Providers", func(t *testing.T) {
		all := GetAll()
		if len(all) != 1 {
			t.Fatalf("Expected 1 provider, got %d", len(all))
		}
		if all[0].ID != "getcomics" {
			t.Errorf("Expected provider ID 'getcomics', got '%s'", all[0].ID)
		}
	})

	t.Run("Get Existing Provider", func(t *testing.T) {
		p, ok := Get("getcomics")
		if !ok {
			t.Fatal("Expected to find provider 'getcomics', but it was not found")
		}
		if p.GetInfo().Name != "GetComics" {
			t.Errorf("Expected provider name 'GetComics', got '%s'", p.GetInfo().Name)
		}
	})

	t.Run("Get Non-existent Provider", func(t *testing.T) {
		_, ok := Get("nonexistent")
		if ok {
			t.Fatal("Expected not to find provider 'nonexistent', but it was found")
		}
	})

	t.Run("Lookup Unknown Provider Lists IDs", func(t *testing.T) {
		_, err := Lookup("mangadex")
		if err == nil {
			t.Fatal("Expected an error for an unknown provider")
		}
		if !strings.Contains(err.Error(), "available: getcomics") {
			t.Errorf("Expected the error to list registered IDs, got %q", err)
		}
		if ids := IDs(); len(ids) != 1 || ids[0] != "getcomics" {
			t.Errorf("Expected IDs [getcomics], got %v", ids)
		}
	})

	t.Run("Panic on Duplicate Registration", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Expected registration of a duplicate provider to panic, but it did not")
			}
		}()
		// This should cause a panic
		Register(getcomics.New())
	})
}
