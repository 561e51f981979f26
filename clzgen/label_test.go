package clzgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleLabel(t *testing.T) {
	tests := []struct {
		name      string
		inputPath string
		expected  string
		wantErr   bool
	}{
		{
			name:      "layered module root",
			inputPath: "/home/user/jboss-eap-7.1/modules/system/layers/base",
			expected:  "eap-7.1",
		},
		{
			name:      "layered module root with trailing separator",
			inputPath: "/home/user/jboss-eap-7.1/modules/system/layers/base/",
			expected:  "eap-7.1",
		},
		{
			name:      "modules directory itself",
			inputPath: "/opt/jboss-eap-6.4/modules",
			expected:  "eap-6.4",
		},
		{
			name:      "no distribution marker",
			inputPath: "/opt/wildfly-10/modules/system/layers/base",
			wantErr:   true,
		},
		{
			name:      "no modules marker",
			inputPath: "/opt/jboss-eap-7.1/bin",
			wantErr:   true,
		},
		{
			name:      "modules before distribution marker",
			inputPath: "/modules/jboss-eap-7.1/lib",
			wantErr:   true,
		},
		{
			name:      "empty label",
			inputPath: "/opt/jboss-/modules/system",
			wantErr:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := ModuleLabel(test.inputPath)
			if test.wantErr {
				assert.ErrorIs(t, err, ErrMarkerNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}

func TestAPILabel(t *testing.T) {
	tests := []struct {
		name      string
		inputPath string
		expected  string
		wantErr   bool
	}{
		{
			name:      "api archive",
			inputPath: "/opt/apis/javaee-api-7.0.jar",
			expected:  "/javaee-api-7.0.jar",
		},
		{
			name:      "first marker wins",
			inputPath: "/opt/javaee-api-8/javaee-api-8.0.jar",
			expected:  "/javaee-api-8/javaee-api-8.0.jar",
		},
		{
			name:      "no marker",
			inputPath: "/opt/apis/jakarta.jakartaee-api-9.0.0.jar",
			wantErr:   true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual, err := APILabel(test.inputPath)
			if test.wantErr {
				assert.ErrorIs(t, err, ErrMarkerNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, actual)
		})
	}
}
