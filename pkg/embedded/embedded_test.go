package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/festfx.yaml":  {Data: []byte("checkIntervalSeconds: 60\n")},
		"data/effects.json": {Data: []byte(`{"enabled":false}`)},
	}
}

// TestNotInitialized 测试未初始化时的错误
func TestNotInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}
	_, err := ReadFile(AppConfigPath)
	if err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestReadFile 测试读取和路径标准化
func TestReadFile(t *testing.T) {
	Init(testFS())
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"标准路径", "data/festfx.yaml", "checkIntervalSeconds: 60\n", false},
		{"./ 前缀", "./data/effects.json", `{"enabled":false}`, false},
		{"未知前缀", "assets/x.png", "", true},
		{"不存在", "data/missing.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadFile(%q): %v", tt.path, err)
			}
			if string(data) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, data, tt.want)
			}
		})
	}
}
