package service

import (
	"errors"
	"testing"

	"github.com/ait-marketplace/internal/constants"
	"github.com/ait-marketplace/internal/models"
	"github.com/ait-marketplace/internal/repository"
)

func setupForumServiceTest(t *testing.T) (*ForumService, *marketplaceTestEnv) {
	t.Helper()
	env := setupMarketplaceServiceTest(t, "forum_service_test")
	return NewForumService(repository.NewForumRepository(env.db), env.notifier), env
}

func TestForumServiceCategoryValidation(t *testing.T) {
	svc, _ := setupForumServiceTest(t)

	category, err := svc.CreateCategory(ForumCategoryInput{Name: " General "})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Name != "General" || category.Color != constants.ForumCategoryColorDefault || !category.IsActive {
		t.Fatalf("unexpected category: %+v", category)
	}
	if _, err := svc.CreateCategory(ForumCategoryInput{Name: "General"}); !errors.Is(err, ErrForumCategoryExists) {
		t.Fatalf("expected duplicate name error, got %v", err)
	}
	if _, err := svc.CreateCategory(ForumCategoryInput{Name: "Events", Color: "red"}); !errors.Is(err, ErrForumCategoryInvalid) {
		t.Fatalf("expected invalid colour error, got %v", err)
	}
	if _, err := svc.UpdateCategory(category.ID, ForumCategoryInput{Name: "General", Color: "#ff8800"}); err != nil {
		t.Fatalf("renaming to own name should pass: %v", err)
	}
	if _, err := svc.UpdateCategory(9999, ForumCategoryInput{Name: "Missing"}); !errors.Is(err, ErrForumCategoryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestForumServicePostReplyFlow(t *testing.T) {
	svc, env := setupForumServiceTest(t)
	author := env.createUser(t, "author")
	helper := env.createUser(t, "helper")
	other := env.createUser(t, "other")
	category, err := svc.CreateCategory(ForumCategoryInput{Name: "Questions"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if _, err := svc.CreatePost(author.ID, ForumPostInput{Title: strPtr("No category"), Content: strPtr("body")}); !errors.Is(err, ErrForumPostInvalid) {
		t.Fatalf("expected invalid post without category, got %v", err)
	}
	post, err := svc.CreatePost(author.ID, ForumPostInput{
		CategoryID: &category.ID,
		Title:      strPtr("Where to buy a bike?"),
		Content:    strPtr("Looking for a second hand bike near campus."),
		PostType:   strPtr(constants.ForumPostTypeQuestion),
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if _, err := svc.UpdatePost(other.ID, post.ID, ForumPostInput{Title: strPtr("Hijack")}); !errors.Is(err, ErrForumNotAuthor) {
		t.Fatalf("expected author check, got %v", err)
	}

	reply, err := svc.CreateReply(helper.ID, post.ID, "Try the Saturday market.")
	if err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if got := len(env.notificationsFor(t, author.ID, constants.NotificationForumReply)); got != 1 {
		t.Fatalf("expected forum_reply notification, got %d", got)
	}
	if _, err := svc.CreateReply(author.ID, post.ID, "Thanks!"); err != nil {
		t.Fatalf("author reply failed: %v", err)
	}
	if got := len(env.notificationsFor(t, author.ID, constants.NotificationForumReply)); got != 1 {
		t.Fatalf("author replying to own post must not notify, got %d", got)
	}

	viewed, err := svc.ViewPost(helper.ID, post.ID)
	if err != nil {
		t.Fatalf("view post failed: %v", err)
	}
	if viewed.ReplyCount != 2 || viewed.ViewCount != 1 || viewed.LastReplyAt == nil {
		t.Fatalf("unexpected post stats: replies=%d views=%d", viewed.ReplyCount, viewed.ViewCount)
	}

	if _, err := svc.MarkSolution(helper.ID, reply.ID); !errors.Is(err, ErrForumNotAuthor) {
		t.Fatalf("only the post author can mark solutions, got %v", err)
	}
	solved, err := svc.MarkSolution(author.ID, reply.ID)
	if err != nil || !solved.IsSolution {
		t.Fatalf("mark solution failed: %v", err)
	}

	if err := env.db.Model(&models.ForumPost{}).Where("id = ?", post.ID).Update("is_locked", true).Error; err != nil {
		t.Fatalf("lock post failed: %v", err)
	}
	if _, err := svc.CreateReply(helper.ID, post.ID, "One more thing"); !errors.Is(err, ErrForumPostLocked) {
		t.Fatalf("expected locked error, got %v", err)
	}
	if _, err := svc.CreateReply(helper.ID, post.ID, "   "); !errors.Is(err, ErrForumReplyInvalid) {
		t.Fatalf("expected empty reply error, got %v", err)
	}

	stats, err := svc.Stats()
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalPosts != 1 || stats.TotalReplies != 2 || stats.TotalUsers != 1 || stats.RecentReplies != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestForumServiceToggleLikes(t *testing.T) {
	svc, env := setupForumServiceTest(t)
	author := env.createUser(t, "author")
	fan := env.createUser(t, "fan")
	category, err := svc.CreateCategory(ForumCategoryInput{Name: "Chat"})
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	post, err := svc.CreatePost(author.ID, ForumPostInput{CategoryID: &category.ID, Title: strPtr("Hello"), Content: strPtr("First post")})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	liked, err := svc.TogglePostLike(fan.ID, post.ID)
	if err != nil || !liked {
		t.Fatalf("expected like, got liked=%v err=%v", liked, err)
	}
	posts, _, err := svc.ListPosts(ForumPostListInput{ViewerID: fan.ID})
	if err != nil || len(posts) != 1 {
		t.Fatalf("list posts failed: %v", err)
	}
	if !posts[0].IsLiked || posts[0].LikeCount != 1 {
		t.Fatalf("expected liked post with count 1, got liked=%v count=%d", posts[0].IsLiked, posts[0].LikeCount)
	}
	liked, err = svc.TogglePostLike(fan.ID, post.ID)
	if err != nil || liked {
		t.Fatalf("expected unlike, got liked=%v err=%v", liked, err)
	}

	reply, err := svc.CreateReply(fan.ID, post.ID, "Welcome")
	if err != nil {
		t.Fatalf("create reply failed: %v", err)
	}
	if liked, err := svc.ToggleReplyLike(author.ID, reply.ID); err != nil || !liked {
		t.Fatalf("expected reply like, got liked=%v err=%v", liked, err)
	}
	replies, _, err := svc.ListReplies(author.ID, post.ID, 1, 20)
	if err != nil || len(replies) != 1 {
		t.Fatalf("list replies failed: %v", err)
	}
	if !replies[0].IsLiked || replies[0].LikeCount != 1 {
		t.Fatalf("unexpected reply like state: %+v", replies[0])
	}
	if _, err := svc.TogglePostLike(fan.ID, 9999); !errors.Is(err, ErrForumPostNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
