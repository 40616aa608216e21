package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"nightfall/internal/model"
	"nightfall/internal/service"
	"nightfall/internal/service/ai"
	"nightfall/internal/service/ai/mock"
)

func newStoryService(t *testing.T, ctrl *gomock.Controller, repo *settingsRepoStub, seeds service.SeedService) (service.StoryService, *mock.MockTextProvider, *mock.MockImageProvider) {
	t.Helper()
	text := newTextMock(t, ctrl)
	images := mock.NewMockImageProvider(ctrl)
	settings := service.NewSettingsService(repo, text, defaultStorySettings(), imageModel)
	return service.NewStoryService(text, images, settings, seeds), text, images
}

func TestStoryService_Generate_Single(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, text, images := newStoryService(t, ctrl, newSettingsRepoStub(), nil)
	ctx := context.Background()

	text.EXPECT().Complete(ctx, "", ai.StoryPrompt).Return("Title: X\nStory: Y", nil)
	images.EXPECT().Generate(ctx, ai.ImageRequest{
		Prompt: ai.GetImagePrompt("X", "Y", ""),
		Count:  1,
		Size:   "1024x1024",
		Style:  model.ImageStyleVivid,
	}).Return([]string{"https://img.example/1.png"}, nil)

	gen, err := svc.Generate(ctx)
	require.NoError(t, err)
	require.NotZero(t, gen.ID)
	require.Equal(t, model.Story{Title: "X", Body: "Y", Images: []string{"https://img.example/1.png"}}, gen.Story)
}

func TestStoryService_Generate_MissingStoryLenient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, text, images := newStoryService(t, ctrl, newSettingsRepoStub(), nil)

	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: Only A Title", nil)
	images.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.ImageRequest) ([]string, error) {
			require.Equal(t, ai.GetImagePrompt("Only A Title", "", ""), req.Prompt)
			return []string{"u"}, nil
		})

	gen, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Only A Title", gen.Story.Title)
	require.Empty(t, gen.Story.Body)
}

func TestStoryService_Generate_MissingStoryStrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.data[service.KeyStoryStrict] = "true"
	svc, text, _ := newStoryService(t, ctrl, repo, nil)

	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: Only A Title", nil)

	gen, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, service.ErrMissingContent)
	require.Contains(t, err.Error(), "missing content")
	require.Nil(t, gen)
}

func TestStoryService_Generate_MissingTitleStrict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.data[service.KeyStoryStrict] = "true"
	svc, text, _ := newStoryService(t, ctrl, repo, nil)

	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Story: It came back.", nil)

	_, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, service.ErrMissingContent)
}

func TestStoryService_Generate_TextFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, text, _ := newStoryService(t, ctrl, newSettingsRepoStub(), nil)
	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("", errors.New("401 invalid api key"))

	gen, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, service.ErrUpstream)
	require.Contains(t, err.Error(), "invalid api key")
	require.Nil(t, gen)
}

func TestStoryService_Generate_ImageFailureIsTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, text, images := newStoryService(t, ctrl, newSettingsRepoStub(), nil)
	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: X\nStory: Y", nil)
	images.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(nil, errors.New("content policy violation"))

	gen, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, service.ErrUpstream)
	require.Nil(t, gen)

	var genErr *service.GenerationError
	require.ErrorAs(t, err, &genErr)
	require.NotZero(t, genErr.ID)
}

func TestStoryService_Generate_FailuresCarryID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.data[service.KeyStoryStrict] = "true"
	svc, text, _ := newStoryService(t, ctrl, repo, nil)
	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: X", nil).Times(2)

	_, err := svc.Generate(context.Background())
	var first *service.GenerationError
	require.ErrorAs(t, err, &first)
	require.ErrorIs(t, err, service.ErrMissingContent)

	_, err = svc.Generate(context.Background())
	var second *service.GenerationError
	require.ErrorAs(t, err, &second)
	require.NotEqual(t, first.ID, second.ID)
}

func TestStoryService_Generate_StoryMayMentionLegendMarkers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, text, images := newStoryService(t, ctrl, newSettingsRepoStub(), nil)
	body := "We checked in at midnight.\nLocation: unknown, said the sign.\nNobody ever checked out."
	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: Vacancy\nStory: "+body, nil)
	images.EXPECT().Generate(gomock.Any(), gomock.Any()).Return([]string{"u"}, nil)

	gen, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, body, gen.Story.Body)
}

func TestStoryService_Generate_UsesStoredImageSettings(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.data[service.KeyStoryImageCount] = "3"
	repo.data[service.KeyStoryImageSize] = "1792x1024"
	repo.data[service.KeyStoryImageStyle] = "natural"
	svc, text, images := newStoryService(t, ctrl, repo, nil)

	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: X\nStory: Y", nil)
	images.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.ImageRequest) ([]string, error) {
			require.Equal(t, 3, req.Count)
			require.Equal(t, "1792x1024", req.Size)
			require.Equal(t, "natural", req.Style)
			return []string{"a", "b", "c"}, nil
		})

	gen, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Len(t, gen.Story.Images, 3)
}

func TestStoryService_Generate_Legend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.data[service.KeyStoryVariant] = model.VariantLegend
	seeds := &seedStub{titles: []string{"Lights seen at the old mill"}}
	svc, text, images := newStoryService(t, ctrl, repo, seeds)

	gomock.InOrder(
		text.EXPECT().Complete(gomock.Any(), "", ai.GetLegendSeedPrompt(seeds.titles)).
			Return("Location: Eastern State Penitentiary\nEntity: The Shadow Figure", nil),
		text.EXPECT().Complete(gomock.Any(), "", ai.GetLegendStoryPrompt("Eastern State Penitentiary", "The Shadow Figure")).
			Return("Title: Cell Block 12\nStory: The footsteps stopped outside.", nil),
	)
	images.EXPECT().Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ai.ImageRequest) ([]string, error) {
			require.Contains(t, req.Prompt, "The scene features The Shadow Figure.")
			return []string{"u"}, nil
		})

	gen, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Cell Block 12", gen.Story.Title)
	require.Equal(t, "The footsteps stopped outside.", gen.Story.Body)
	require.Equal(t, 1, seeds.calls)
}

func TestStoryService_Generate_LegendRequiresEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.data[service.KeyStoryVariant] = model.VariantLegend
	svc, text, _ := newStoryService(t, ctrl, repo, nil)

	text.EXPECT().Complete(gomock.Any(), "", ai.GetLegendSeedPrompt(nil)).Return("Location: Somewhere", nil)

	_, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, service.ErrMissingContent)
	require.Contains(t, err.Error(), "entity")
}

func TestStoryService_Generate_SettingsError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := newSettingsRepoStub()
	repo.getErr = errors.New("database is locked")
	svc, _, _ := newStoryService(t, ctrl, repo, nil)

	_, err := svc.Generate(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "database is locked")
}

func TestStoryService_Generate_DistinctIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, text, images := newStoryService(t, ctrl, newSettingsRepoStub(), nil)
	text.EXPECT().Complete(gomock.Any(), "", ai.StoryPrompt).Return("Title: X\nStory: Y", nil).Times(2)
	images.EXPECT().Generate(gomock.Any(), gomock.Any()).Return([]string{"u"}, nil).Times(2)

	first, err := svc.Generate(context.Background())
	require.NoError(t, err)
	second, err := svc.Generate(context.Background())
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}
