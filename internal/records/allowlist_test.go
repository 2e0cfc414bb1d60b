package records

import (
	"errors"
	"reflect"
	"testing"
)

func TestDecodeAllowListNativeArray(t *testing.T) {
	got, err := DecodeAllowList([]any{"192.168.1.1", "10.0.0.0/8"})
	if err != nil {
		t.Fatalf("DecodeAllowList returned error: %v", err)
	}
	want := []string{"192.168.1.1", "10.0.0.0/8"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeAllowList = %v, want %v", got, want)
	}
}

func TestDecodeAllowListStringSlice(t *testing.T) {
	got, err := DecodeAllowList([]string{"172.16.0.0/12"})
	if err != nil {
		t.Fatalf("DecodeAllowList returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "172.16.0.0/12" {
		t.Errorf("DecodeAllowList = %v", got)
	}
}

func TestDecodeAllowListJSONString(t *testing.T) {
	got, err := DecodeAllowList(`["192.168.1.0/24","127.0.0.1"]`)
	if err != nil {
		t.Fatalf("DecodeAllowList returned error: %v", err)
	}
	want := []string{"192.168.1.0/24", "127.0.0.1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DecodeAllowList = %v, want %v", got, want)
	}
}

func TestDecodeAllowListBareAddress(t *testing.T) {
	got, err := DecodeAllowList("203.0.113.7")
	if err != nil {
		t.Fatalf("DecodeAllowList returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "203.0.113.7" {
		t.Errorf("DecodeAllowList = %v", got)
	}
}

func TestDecodeAllowListFailClosed(t *testing.T) {
	cases := []any{
		nil,
		[]any{"192.168.1.1", 42},
		[]any{true},
		`["192.168.1.1", 8]`,
		map[string]any{"ip": "192.168.1.1"},
	}
	for _, value := range cases {
		if _, err := DecodeAllowList(value); !errors.Is(err, ErrMalformedAllowList) {
			t.Errorf("DecodeAllowList(%#v) = %v, want ErrMalformedAllowList", value, err)
		}
	}
}

func TestCollectionHasField(t *testing.T) {
	col := &Collection{Fields: []string{"email", "ips", "name"}}
	if !col.HasField("ips") {
		t.Error("HasField(ips) = false")
	}
	if col.HasField("password") {
		t.Error("HasField(password) = true")
	}
}
