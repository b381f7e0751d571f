package integration_test

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, size int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// pngHeader declares w x h pixels and carries no image data.
func pngHeader(w, h uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], w)
	binary.BigEndian.PutUint32(ihdr[4:], h)
	ihdr[8], ihdr[9] = 8, 6

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestGetUser(t *testing.T) {
	ts := NewTestServer(t)
	session := ts.RegisterAndLogin(t, "fay")

	res, env := ts.SendRequest(t, http.MethodGet, "/api/users/user/"+session.UserID, session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "User profile retrieved successfully.", env.Message)

	var profile struct {
		UserID          string `json:"userId"`
		Username        string `json:"username"`
		IsEmailVerified bool   `json:"isEmailVerified"`
	}
	env.Decode(t, &profile)
	assert.Equal(t, session.UserID, profile.UserID)
	assert.Equal(t, "fay", profile.Username)
	assert.True(t, profile.IsEmailVerified)

	res, env = ts.SendRequest(t, http.MethodGet, "/api/users/user/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid user id.", env.Message)

	res, env = ts.SendRequest(t, http.MethodGet, "/api/users/user/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "User not found.", env.Message)
}

func TestUpdateProfile_Partial(t *testing.T) {
	ts := NewTestServer(t)
	session := ts.RegisterAndLogin(t, "gus")

	res, env := ts.SendRequest(t, http.MethodPut, "/api/users/"+session.UserID, session.AccessToken, map[string]string{
		"city":        "Lisbon",
		"dateOfBirth": "1990-04-02",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	assert.Equal(t, "Profile updated successfully.", env.Message)

	var profile struct {
		FullName    string  `json:"fullName"`
		City        *string `json:"city"`
		Bio         *string `json:"bio"`
		DateOfBirth string  `json:"dateOfBirth"`
	}
	env.Decode(t, &profile)
	require.NotNil(t, profile.City)
	assert.Equal(t, "Lisbon", *profile.City)
	assert.Equal(t, "Test gus", profile.FullName)
	assert.Nil(t, profile.Bio)
	assert.Equal(t, "1990-04-02", profile.DateOfBirth)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/users/"+session.UserID, session.AccessToken, map[string]string{
		"gender": "unknown-value",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPut, "/api/users/"+session.UserID, session.AccessToken, map[string]string{
		"fullName": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUpdateProfile_StoresGenderLowercase(t *testing.T) {
	ts := NewTestServer(t)
	session := ts.RegisterAndLogin(t, "lena")

	res, env := ts.SendRequest(t, http.MethodPut, "/api/users/"+session.UserID, session.AccessToken, map[string]string{
		"gender": " MALE ",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)

	var profile struct {
		Gender *string `json:"gender"`
	}
	env.Decode(t, &profile)
	require.NotNil(t, profile.Gender)
	assert.Equal(t, "male", *profile.Gender)
}

func TestPublicProfile(t *testing.T) {
	ts := NewTestServer(t, withConnections(map[string]int{"hana": 4}))
	session := ts.RegisterAndLogin(t, "hana")

	res, env := ts.SendRequest(t, http.MethodGet, "/api/users/users/hana", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Profile fetched.", env.Message)

	var profile map[string]interface{}
	env.Decode(t, &profile)
	assert.Equal(t, "hana", profile["username"])
	assert.EqualValues(t, 4, profile["connectionCount"])
	assert.NotContains(t, profile, "email")

	res, env = ts.SendRequest(t, http.MethodGet, "/api/users/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "User not found.", env.Message)
}

func TestInterests(t *testing.T) {
	ts := NewTestServer(t)
	session := ts.RegisterAndLogin(t, "ivan")

	res, env := ts.SendRequest(t, http.MethodGet, "/api/users/interests", session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Interests fetched.", env.Message)
	var catalogue []struct {
		ID   int    `json:"interestId"`
		Name string `json:"name"`
	}
	env.Decode(t, &catalogue)
	assert.Len(t, catalogue, 15)

	path := "/api/users/" + session.UserID + "/interests"

	res, env = ts.SendRequest(t, http.MethodPut, path, session.AccessToken, map[string][]int{"interestIds": {2, 5, 2}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Interests updated successfully.", env.Message)

	res, env = ts.SendRequest(t, http.MethodPut, path, session.AccessToken, map[string][]int{"interestIds": {}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "No interests provided.", env.Message)

	res, env = ts.SendRequest(t, http.MethodPut, path, session.AccessToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "No interests provided.", env.Message)

	res, _ = ts.SendRequest(t, http.MethodPut, path, session.AccessToken, map[string][]int{"interestIds": {0}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, env = ts.SendRequest(t, http.MethodPut, path, session.AccessToken, map[string][]int{"interestIds": {1, 999}})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "One or more invalid interest IDs.", env.Message)

	res, env = ts.SendRequest(t, http.MethodGet, "/api/users/user/"+session.UserID, session.AccessToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var profile struct {
		Interests []int `json:"interests"`
	}
	env.Decode(t, &profile)
	assert.Equal(t, []int{2, 5}, profile.Interests)
}

func TestProfilePicture_Upload(t *testing.T) {
	ts := NewTestServer(t)
	session := ts.RegisterAndLogin(t, "jill")
	path := "/api/users/" + session.UserID + "/profile-picture"

	res, env := ts.SendFile(t, http.MethodPut, path, session.AccessToken, "image/png", pngBytes(t, 64))
	require.Equal(t, http.StatusOK, res.StatusCode, env.Message)
	assert.Equal(t, "Profile picture updated.", env.Message)

	var picture struct {
		URL string `json:"url"`
	}
	env.Decode(t, &picture)
	assert.Equal(t, "http://localhost:8080/static/profile-pictures/"+session.UserID+".jpg", picture.URL)

	served, err := ts.Server.Client().Get(ts.Server.URL + strings.TrimPrefix(picture.URL, "http://localhost:8080"))
	require.NoError(t, err)
	defer served.Body.Close()
	assert.Equal(t, http.StatusOK, served.StatusCode)
	_, format, err := image.DecodeConfig(served.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestProfilePicture_Rejections(t *testing.T) {
	ts := NewTestServer(t)
	session := ts.RegisterAndLogin(t, "kim")
	path := "/api/users/" + session.UserID + "/profile-picture"

	res, env := ts.SendFile(t, http.MethodPut, path, session.AccessToken, "image/gif", []byte("GIF89a"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Only JPEG/PNG files allowed.", env.Message)

	tooBig := bytes.Repeat([]byte{0xff}, ts.Config.Upload.MaxSizeMB*1024*1024+1024)
	res, env = ts.SendFile(t, http.MethodPut, path, session.AccessToken, "image/jpeg", tooBig)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "File exceeds 5 MB limit.", env.Message)

	res, env = ts.SendFile(t, http.MethodPut, path, session.AccessToken, "image/png", []byte("not really a png"))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid file.", env.Message)

	res, env = ts.SendFile(t, http.MethodPut, path, session.AccessToken, "image/png", pngHeader(40000, 40000))
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid file.", env.Message)

	res, env = ts.SendRequest(t, http.MethodPut, path, session.AccessToken, map[string]string{"file": "x"})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "No file uploaded.", env.Message)
}

func TestHealth(t *testing.T) {
	ts := NewTestServer(t)

	res, env := ts.SendRequest(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.True(t, env.Success)
}

func TestSwaggerIsServed(t *testing.T) {
	ts := NewTestServer(t)

	res, err := ts.Server.Client().Get(ts.Server.URL + "/swagger/doc.json")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestInternalErrors_HideDetailsInProduction(t *testing.T) {
	for _, tc := range []struct {
		name    string
		opts    []serverOption
		message string
	}{
		{name: "debug", message: "sql: database is closed"},
		{name: "production", opts: []serverOption{withProduction()}, message: "Internal server error"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ts := NewTestServer(t, tc.opts...)
			sqlDB, err := ts.DB.DB()
			require.NoError(t, err)
			require.NoError(t, sqlDB.Close())

			res, env := ts.SendRequest(t, http.MethodGet, "/api/users/user/"+uuid.NewString(), "", nil)
			assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
			assert.Contains(t, env.Message, tc.message)
		})
	}
}
