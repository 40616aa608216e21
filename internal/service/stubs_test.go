package service_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"nightfall/internal/model"
	"nightfall/internal/service/ai/mock"
)

type settingsRepoStub struct {
	data   map[string]string
	getErr error
	setErr error
	writes int
}

func newSettingsRepoStub() *settingsRepoStub {
	return &settingsRepoStub{data: make(map[string]string)}
}

func (s *settingsRepoStub) Get(_ context.Context, key string) (*model.Setting, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{Key: key, Value: v}, nil
}

func (s *settingsRepoStub) GetByPrefix(_ context.Context, prefix string) ([]model.Setting, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	var out []model.Setting
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out = append(out, model.Setting{Key: k, Value: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (s *settingsRepoStub) SetMany(_ context.Context, values map[string]string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.writes++
	for k, v := range values {
		s.data[k] = v
	}
	return nil
}

func (s *settingsRepoStub) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type seedStub struct {
	titles []string
	calls  int
}

func (s *seedStub) Titles(context.Context) []string {
	s.calls++
	return s.titles
}

const imageModel = "dall-e-3"

func defaultStorySettings() model.StorySettings {
	return model.StorySettings{
		Variant:    model.VariantSingle,
		ImageCount: 1,
		ImageSize:  "1024x1024",
		ImageStyle: model.ImageStyleVivid,
	}
}

func newTextMock(t *testing.T, ctrl *gomock.Controller) *mock.MockTextProvider {
	t.Helper()
	text := mock.NewMockTextProvider(ctrl)
	text.EXPECT().Name().Return("openai").AnyTimes()
	text.EXPECT().Model().Return("gpt-3.5-turbo").AnyTimes()
	return text
}
