package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/MaxOhn/shishabot/config"
	"github.com/MaxOhn/shishabot/db"
	"github.com/MaxOhn/shishabot/ratelimit"
)

// fakeStore is an in-memory ConfigStore.
type fakeStore struct {
	users      map[string]*db.UserConfig
	guilds     map[string]*db.GuildConfig
	upsertErr  error
	upserts    int
	userInsert int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  make(map[string]*db.UserConfig),
		guilds: make(map[string]*db.GuildConfig),
	}
}

func (f *fakeStore) GetUserConfig(ctx context.Context, userID string) (*db.UserConfig, error) {
	return f.users[userID], nil
}

func (f *fakeStore) InsertUserConfig(ctx context.Context, userID string, cfg *db.UserConfig) error {
	f.userInsert++
	f.users[userID] = cfg
	return nil
}

func (f *fakeStore) UpsertGuildConfig(ctx context.Context, guildID string, cfg *db.GuildConfig) error {
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.guilds[guildID] = cfg.Clone()
	return nil
}

func testBot(t *testing.T, store ConfigStore) *Bot {
	t.Helper()

	if store == nil {
		store = newFakeStore()
	}

	return &Bot{
		Cfg:     &config.BotConfig{Owners: []uint64{111}},
		Configs: NewConfigs(store),
		Buckets: ratelimit.NewBuckets(),
		Counter: NewCommandCounter(),
	}
}

func TestCheckPolicyGuildOnly(t *testing.T) {
	b := testBot(t, nil)

	result, msg := b.checkPolicy(context.Background(), FlagOnlyGuilds, "", invocation{userID: "1"})
	if result != ProcessNoDM {
		t.Fatalf("result = %s, want NoDM", result)
	}
	if msg != "That command is only available in servers" {
		t.Errorf("message = %q", msg)
	}

	// Authority commands are implicitly guild-only.
	result, _ = b.checkPolicy(context.Background(), FlagAuthority, "", invocation{userID: "2"})
	if result != ProcessNoDM {
		t.Errorf("authority in DM: result = %s, want NoDM", result)
	}
}

func TestCheckPolicyOwnerOnly(t *testing.T) {
	b := testBot(t, nil)

	result, msg := b.checkPolicy(context.Background(), FlagOnlyOwner, "", invocation{userID: "222"})
	if result != ProcessNoOwner {
		t.Fatalf("result = %s, want NoOwner", result)
	}
	if msg != "That command can only be used by the bot owner" {
		t.Errorf("message = %q", msg)
	}

	result, _ = b.checkPolicy(context.Background(), FlagOnlyOwner, "", invocation{userID: "111"})
	if result != ProcessSuccess {
		t.Errorf("owner: result = %s, want Success", result)
	}
}

func TestCheckPolicyGlobalBucketSilent(t *testing.T) {
	b := testBot(t, nil)

	for i := 0; i < 30; i++ {
		if got := b.Buckets.Get(ratelimit.All).Take("3"); got != 0 {
			t.Fatalf("warmup take %d denied", i)
		}
	}

	result, msg := b.checkPolicy(context.Background(), 0, "", invocation{userID: "3", prefix: true})
	if result != ProcessRatelimited {
		t.Fatalf("result = %s, want Ratelimited", result)
	}
	if msg != "" {
		t.Errorf("global bucket denial must be silent, got %q", msg)
	}
}

func TestCheckPolicyGlobalBucketSkipsSlash(t *testing.T) {
	b := testBot(t, nil)

	for i := 0; i < 30; i++ {
		if got := b.Buckets.Get(ratelimit.All).Take("5"); got != 0 {
			t.Fatalf("warmup take %d denied", i)
		}
	}

	result, _ := b.checkPolicy(context.Background(), 0, "", invocation{userID: "5"})
	if result != ProcessSuccess {
		t.Errorf("slash invocation hit the global bucket: result = %s", result)
	}
}

func TestCheckPolicyCommandBucketMessage(t *testing.T) {
	b := testBot(t, nil)

	for i := 0; i < 2; i++ {
		result, _ := b.checkPolicy(context.Background(), 0, ratelimit.Render, invocation{userID: "4"})
		if result != ProcessSuccess {
			t.Fatalf("take %d: result = %s, want Success", i, result)
		}
	}

	result, msg := b.checkPolicy(context.Background(), 0, ratelimit.Render, invocation{userID: "4"})
	if result != ProcessRatelimited {
		t.Fatalf("result = %s, want Ratelimited", result)
	}
	if !strings.HasPrefix(msg, "Command on cooldown, try again in ") {
		t.Errorf("message = %q", msg)
	}
}

func TestCheckPolicyAuthority(t *testing.T) {
	store := newFakeStore()
	b := testBot(t, store)

	guild := "500"
	if err := b.Configs.UpdateGuildConfig(context.Background(), guild, func(cfg *db.GuildConfig) {
		cfg.Authorities = []db.Authority{
			{Kind: db.AuthorityRole, ID: "900"},
			{Kind: db.AuthorityUser, ID: "42"},
		}
	}); err != nil {
		t.Fatalf("UpdateGuildConfig: %v", err)
	}

	ctx := context.Background()

	// Matching role passes.
	result, _ := b.checkPolicy(ctx, FlagAuthority, "", invocation{userID: "5", guildID: guild, memberRoles: []string{"900"}})
	if result != ProcessSuccess {
		t.Errorf("role authority: result = %s, want Success", result)
	}

	// Matching user id passes.
	result, _ = b.checkPolicy(ctx, FlagAuthority, "", invocation{userID: "42", guildID: guild})
	if result != ProcessSuccess {
		t.Errorf("user authority: result = %s, want Success", result)
	}

	// No match is rejected with the role list.
	result, msg := b.checkPolicy(ctx, FlagAuthority, "", invocation{userID: "6", guildID: guild})
	if result != ProcessNoAuthority {
		t.Fatalf("result = %s, want NoAuthority", result)
	}
	if !strings.Contains(msg, "<@&900>") {
		t.Errorf("rejection should list authority roles, got %q", msg)
	}
}

func TestCheckAuthorityAdminAndDefaults(t *testing.T) {
	b := testBot(t, nil)
	ctx := context.Background()

	inv := invocation{userID: "7", guildID: "600", memberPerms: 0x8}
	if reason := b.checkAuthority(ctx, inv); reason != "" {
		t.Errorf("admin permission should pass, got %q", reason)
	}

	inv = invocation{userID: "7", guildID: "600"}
	if reason := b.checkAuthority(ctx, inv); reason != "You need admin permission to use this command" {
		t.Errorf("no authorities configured: reason = %q", reason)
	}
}

func TestProcessResultString(t *testing.T) {
	results := map[ProcessResult]string{
		ProcessSuccess:          "Success",
		ProcessNoDM:             "NoDM",
		ProcessNoSendPermission: "NoSendPermission",
		ProcessRatelimited:      "Ratelimited",
		ProcessNoOwner:          "NoOwner",
		ProcessNoAuthority:      "NoAuthority",
	}

	for result, want := range results {
		if got := result.String(); got != want {
			t.Errorf("String(%d) = %q, want %q", result, got, want)
		}
	}
}
