package mailservice

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSendEmail(t *testing.T) {
	testCases := []struct {
		name        string
		parseErr    error
		dialErr     error
		expectDial  bool
		expectedErr bool
	}{
		{name: "success", expectDial: true},
		{name: "dial failure", dialErr: errors.New("connection refused"), expectDial: true, expectedErr: true},
		{name: "template failure", parseErr: errors.New("could not parse template"), expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockParser := new(MockTemplate)
			mockDialer := new(MockDialer)

			mailer := Mail{
				dialer: mockDialer,
				parser: mockParser,
				sender: "sender@example.com",
			}

			data := welcomeData{Username: "testuser"}

			if tc.parseErr != nil {
				mockParser.On("ParseTemplate", welcomeTemplate, data).Return(nil, nil, nil, tc.parseErr)
			} else {
				mockParser.On("ParseTemplate", welcomeTemplate, data).Return(
					bytes.NewBufferString("Test Subject"),
					bytes.NewBufferString("Test Plain Body"),
					bytes.NewBufferString("Test HTML Body"),
					nil,
				)
			}

			if tc.expectDial {
				mockDialer.On("DialAndSend", mock.AnythingOfType("[]*mail.Message")).Return(tc.dialErr)
			}

			err := mailer.send("test@example.com", data, welcomeTemplate)
			assert.Equal(t, tc.expectedErr, err != nil)

			mockParser.AssertExpectations(t)
			mockDialer.AssertExpectations(t)
		})
	}
}
