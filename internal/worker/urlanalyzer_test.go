package worker_test

import (
	"context"
	"errors"
	"testing"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"veriweb/internal/analyzer"
	"veriweb/internal/worker"
	"veriweb/pkg/domain"
	"veriweb/pkg/logger"
	"veriweb/pkg/storage"
	mockstorage "veriweb/pkg/storage/mock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, url string) *river.Job[analyzer.JobArgs] {
	return &river.Job[analyzer.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   analyzer.JobArgs{URL: url},
	}
}

func TestURLAnalyzerWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mockstorage.NewMockStorage(ctrl)
	w := worker.NewURLAnalyzerWorker(st, 3)

	URL := "http://192.168.1.5/login"
	st.EXPECT().PendingAnalysisCountByURL(gomock.Any(), URL).Return(int64(2), nil)
	st.EXPECT().UpdatePendingAnalysesByURL(gomock.Any(), URL, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, updates storage.AnalysisUpdates) error {
			require.Equal(t, domain.AnalysisStatusCompleted, updates.Status)
			require.NotNil(t, updates.Report)
			// raw IP host, sensitive keyword and plain http should all fire
			require.Equal(t, 45, updates.Report.Score)
			require.Equal(t, domain.VerdictMalicious, updates.Report.Verdict)
			require.NotNil(t, updates.LastError)
			require.Empty(t, *updates.LastError)

			return nil
		},
	)

	require.NoError(t, w.Work(context.Background(), makeJob(1, URL)))
}

func TestURLAnalyzerWorker_Work_SkipsWhenNoPendingAnalyses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mockstorage.NewMockStorage(ctrl)
	w := worker.NewURLAnalyzerWorker(st, 3)

	URL := "https://deleted.example.com/"
	st.EXPECT().PendingAnalysisCountByURL(gomock.Any(), URL).Return(int64(0), nil)
	// no update expected

	require.NoError(t, w.Work(context.Background(), makeJob(2, URL)))
}

func TestURLAnalyzerWorker_Work_CountError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mockstorage.NewMockStorage(ctrl)
	w := worker.NewURLAnalyzerWorker(st, 3)

	URL := "https://example.com/"
	st.EXPECT().PendingAnalysisCountByURL(gomock.Any(), URL).Return(int64(0), errors.New("db down"))

	err := w.Work(context.Background(), makeJob(3, URL))
	require.Error(t, err)
}

func TestURLAnalyzerWorker_Work_UpdateErrorRecordsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mockstorage.NewMockStorage(ctrl)
	w := worker.NewURLAnalyzerWorker(st, 3)

	URL := "https://example.com/"
	updateErr := errors.New("write failed")

	st.EXPECT().PendingAnalysisCountByURL(gomock.Any(), URL).Return(int64(1), nil)
	// first update (completed) fails
	st.EXPECT().UpdatePendingAnalysesByURL(gomock.Any(), URL, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, updates storage.AnalysisUpdates) error {
			require.Equal(t, domain.AnalysisStatusCompleted, updates.Status)

			return updateErr
		},
	)
	// failure is then recorded with the configured attempt budget
	st.EXPECT().UpdatePendingAnalysesByURL(gomock.Any(), URL, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, updates storage.AnalysisUpdates) error {
			require.Equal(t, domain.AnalysisStatusFailed, updates.Status)
			require.Equal(t, 3, updates.MaxAttempts)
			require.NotNil(t, updates.LastError)
			require.Contains(t, *updates.LastError, "write failed")

			return nil
		},
	)

	err := w.Work(context.Background(), makeJob(4, URL))
	require.Error(t, err)
	require.ErrorIs(t, err, updateErr)
}

func TestURLAnalyzerWorker_Work_SafeURL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := mockstorage.NewMockStorage(ctrl)
	w := worker.NewURLAnalyzerWorker(st, 3)

	URL := "https://example.com/"
	st.EXPECT().PendingAnalysisCountByURL(gomock.Any(), URL).Return(int64(1), nil)
	st.EXPECT().UpdatePendingAnalysesByURL(gomock.Any(), URL, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, updates storage.AnalysisUpdates) error {
			require.Equal(t, 100, updates.Report.Score)
			require.Equal(t, domain.VerdictSafe, updates.Report.Verdict)
			require.Empty(t, updates.Report.Threats)

			return nil
		},
	)

	require.NoError(t, w.Work(context.Background(), makeJob(5, URL)))
}
