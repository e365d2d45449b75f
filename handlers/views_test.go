package handlers

import (
	"bytes"
	"io/fs"
	"strings"
	"testing"

	"github.com/brendenGit/Warbler/auth"
	"github.com/brendenGit/Warbler/dto"
	"github.com/brendenGit/Warbler/models"
	"github.com/brendenGit/Warbler/services"
)

func TestLoadViewsParsesEveryPage(t *testing.T) {
	v, err := LoadViews()
	if err != nil {
		t.Fatalf("LoadViews() error = %v", err)
	}
	for _, name := range pageNames {
		if _, ok := v.pages[name]; !ok {
			t.Errorf("page %s not loaded", name)
		}
	}
}

func TestPartialsAreEmbedded(t *testing.T) {
	for _, name := range partials {
		if _, err := fs.Stat(templateFS, name); err != nil {
			t.Errorf("partial %s not embedded: %v", name, err)
		}
	}
}

func TestExecuteUnknownPage(t *testing.T) {
	v, err := LoadViews()
	if err != nil {
		t.Fatalf("LoadViews() error = %v", err)
	}
	var buf bytes.Buffer
	if err := v.Execute(&buf, "missing.html", nil); err == nil {
		t.Error("Execute(missing.html) error = nil")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes for a missing page", buf.Len())
	}
}

func TestExecutePages(t *testing.T) {
	v, err := LoadViews()
	if err != nil {
		t.Fatalf("LoadViews() error = %v", err)
	}

	me := &models.User{ID: 1, Username: "alice", ImageURL: models.DefaultImageURL}
	other := models.User{ID: 2, Username: "bob", Bio: "<b>bold</b>"}
	msg := dto.MessageDTO{ID: 7, Text: "Hello <world>", UserID: 2, Username: "bob"}

	tests := []struct {
		page string
		data map[string]interface{}
		want string
	}{
		{"home-anon.html", map[string]interface{}{"CurrentUser": (*models.User)(nil)}, "Sign up now"},
		{"home.html", map[string]interface{}{"CurrentUser": me, "Messages": []dto.MessageDTO{msg}}, "Hello &lt;world&gt;"},
		{"signup.html", map[string]interface{}{"Form": services.SignupInput{Username: "zed"}, "Error": "Username or email already taken"}, "Username or email already taken"},
		{"login.html", map[string]interface{}{"Username": "zed"}, `value="zed"`},
		{"users/index.html", map[string]interface{}{"CurrentUser": me, "Users": []models.User{other}, "FollowingIDs": map[uint]bool{2: true}}, "/users/stop-following/2"},
		{"users/index.html", map[string]interface{}{"Users": []models.User{}}, "Sorry, no users found"},
		{"users/followers.html", map[string]interface{}{"CurrentUser": me, "User": &other, "Users": []models.User{*me}, "FollowingIDs": map[uint]bool{}, "IsFollowing": false}, "/users/follow/2"},
		{"users/edit.html", map[string]interface{}{"CurrentUser": me, "Form": services.ProfileInput{Bio: "about"}}, "about"},
		{"messages/show.html", map[string]interface{}{"CurrentUser": (*models.User)(nil), "Message": msg, "LikeCount": int64(3)}, `<p class="single-message">Hello &lt;world&gt;</p>`},
		{"error.html", map[string]interface{}{"StatusCode": 404, "Message": "gone"}, "gone"},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			var buf bytes.Buffer
			tt.data["Flashes"] = []auth.Flash{{Category: "success", Message: "flashed"}}
			if err := v.Execute(&buf, tt.page, tt.data); err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			out := buf.String()
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
			if !strings.Contains(out, "flashed") {
				t.Error("output missing flash")
			}
		})
	}
}
