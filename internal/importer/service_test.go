package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/biztime/internal/importer"
	"github.com/MrJamesThe3rd/biztime/internal/invoice"
)

const upload = "comp_code,amt\n" +
	"ibm,200\n" +
	"ghost,10\n" +
	"apple,abc\n" +
	"apple,50\n"

func TestService_Import(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := importer.NewMockInvoiceCreator(ctrl)

	var nextID int64

	created := func(_ context.Context, p invoice.CreateParams) (*invoice.Invoice, error) {
		nextID++
		return &invoice.Invoice{ID: nextID, CompCode: p.CompCode, Amount: p.Amount}, nil
	}

	gomock.InOrder(
		creator.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(created),
		creator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, invoice.ErrUnknownCompany),
		creator.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(created),
	)

	svc := importer.NewService(creator)

	got, err := svc.Import(context.Background(), strings.NewReader(upload))
	require.NoError(t, err)

	require.Len(t, got.Created, 2)
	assert.Equal(t, "ibm", got.Created[0].CompCode)
	assert.Equal(t, "apple", got.Created[1].CompCode)

	assert.ElementsMatch(t, []importer.RowError{
		{Line: 4, Message: `amt "abc" is not a number`},
		{Line: 3, Message: "The referenced company does not exist"},
	}, got.Failed)
}

func TestService_Import_StoreFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creator := importer.NewMockInvoiceCreator(ctrl)
	creator.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	svc := importer.NewService(creator)

	got, err := svc.Import(context.Background(), strings.NewReader("comp_code,amt\nibm,1\nibm,2\n"))
	assert.EqualError(t, err, "importing line 2: connection reset")
	assert.Nil(t, got)
}

func TestService_Import_BadFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := importer.NewService(importer.NewMockInvoiceCreator(ctrl))

	_, err := svc.Import(context.Background(), strings.NewReader("just,some\nwords,here\n"))
	assert.ErrorIs(t, err, importer.ErrMissingHeader)
}
