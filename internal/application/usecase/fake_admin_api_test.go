package usecase_test

import (
	"context"
	"errors"

	"github.com/jhoicas/medicare-console/internal/application/dto"
)

var errNotStubbed = errors.New("no configurado en el fake")

// fakeAdminAPI implementa ports.AdminAPI; cada método delega en su fn si está definida.
type fakeAdminAPI struct {
	listUsersFn      func(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.UserSummary], error)
	updateUserFn     func(ctx context.Context, token, userID, status string) error
	analyticsFn      func(ctx context.Context, token string) (*dto.SystemAnalytics, error)
	dashAnalyticsFn  func(ctx context.Context, token string) (dto.DashboardAnalytics, error)
	activityFn       func(ctx context.Context, token string) ([]dto.ActivityEntry, error)
	listPatientsFn   func(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Patient], error)
	getPatientFn     func(ctx context.Context, token, id string) (*dto.Patient, error)
	updatePatientFn  func(ctx context.Context, token, id string, in dto.PatientUpdateRequest) error
	medicationsFn    func(ctx context.Context, token, id string) ([]dto.Medication, error)
	adherenceFn      func(ctx context.Context, token, id string, days int) (*dto.Adherence, error)
	listCaretakersFn func(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Caretaker], error)
	getCaretakerFn   func(ctx context.Context, token, id string) (*dto.Caretaker, error)
	listLinksFn      func(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Link], error)
	createLinkFn     func(ctx context.Context, token string, in dto.AssignRequest) error
	deleteLinkFn     func(ctx context.Context, token, id string) error
	listRequestsFn   func(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.DonationRequest], error)
	createRequestFn  func(ctx context.Context, token string, in dto.CreateDonationRequest) error
	approveFn        func(ctx context.Context, token, id, notes string) error
	rejectFn         func(ctx context.Context, token, id, reason string) error
	findDonorsFn     func(ctx context.Context, token, id string, limit int) ([]dto.Donor, error)
	notifyFn         func(ctx context.Context, token, id string) (string, error)
	listDonationsFn  func(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Donation], error)
}

func (f *fakeAdminAPI) ListUsers(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.UserSummary], error) {
	if f.listUsersFn == nil {
		return nil, errNotStubbed
	}
	return f.listUsersFn(ctx, token, q)
}

func (f *fakeAdminAPI) UpdateUserStatus(ctx context.Context, token, userID, status string) error {
	if f.updateUserFn == nil {
		return errNotStubbed
	}
	return f.updateUserFn(ctx, token, userID, status)
}

func (f *fakeAdminAPI) GetAnalytics(ctx context.Context, token string) (*dto.SystemAnalytics, error) {
	if f.analyticsFn == nil {
		return nil, errNotStubbed
	}
	return f.analyticsFn(ctx, token)
}

func (f *fakeAdminAPI) GetDashboardAnalytics(ctx context.Context, token string) (dto.DashboardAnalytics, error) {
	if f.dashAnalyticsFn == nil {
		return nil, errNotStubbed
	}
	return f.dashAnalyticsFn(ctx, token)
}

func (f *fakeAdminAPI) GetActivity(ctx context.Context, token string) ([]dto.ActivityEntry, error) {
	if f.activityFn == nil {
		return nil, errNotStubbed
	}
	return f.activityFn(ctx, token)
}

func (f *fakeAdminAPI) ListPatients(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Patient], error) {
	if f.listPatientsFn == nil {
		return nil, errNotStubbed
	}
	return f.listPatientsFn(ctx, token, q)
}

func (f *fakeAdminAPI) GetPatient(ctx context.Context, token, id string) (*dto.Patient, error) {
	if f.getPatientFn == nil {
		return nil, errNotStubbed
	}
	return f.getPatientFn(ctx, token, id)
}

func (f *fakeAdminAPI) UpdatePatient(ctx context.Context, token, id string, in dto.PatientUpdateRequest) error {
	if f.updatePatientFn == nil {
		return errNotStubbed
	}
	return f.updatePatientFn(ctx, token, id, in)
}

func (f *fakeAdminAPI) GetPatientMedications(ctx context.Context, token, id string) ([]dto.Medication, error) {
	if f.medicationsFn == nil {
		return nil, errNotStubbed
	}
	return f.medicationsFn(ctx, token, id)
}

func (f *fakeAdminAPI) GetPatientAdherence(ctx context.Context, token, id string, days int) (*dto.Adherence, error) {
	if f.adherenceFn == nil {
		return nil, errNotStubbed
	}
	return f.adherenceFn(ctx, token, id, days)
}

func (f *fakeAdminAPI) ListCaretakers(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Caretaker], error) {
	if f.listCaretakersFn == nil {
		return nil, errNotStubbed
	}
	return f.listCaretakersFn(ctx, token, q)
}

func (f *fakeAdminAPI) GetCaretaker(ctx context.Context, token, id string) (*dto.Caretaker, error) {
	if f.getCaretakerFn == nil {
		return nil, errNotStubbed
	}
	return f.getCaretakerFn(ctx, token, id)
}

func (f *fakeAdminAPI) ListLinks(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Link], error) {
	if f.listLinksFn == nil {
		return nil, errNotStubbed
	}
	return f.listLinksFn(ctx, token, q)
}

func (f *fakeAdminAPI) CreateLink(ctx context.Context, token string, in dto.AssignRequest) error {
	if f.createLinkFn == nil {
		return errNotStubbed
	}
	return f.createLinkFn(ctx, token, in)
}

func (f *fakeAdminAPI) DeleteLink(ctx context.Context, token, id string) error {
	if f.deleteLinkFn == nil {
		return errNotStubbed
	}
	return f.deleteLinkFn(ctx, token, id)
}

func (f *fakeAdminAPI) ListDonationRequests(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.DonationRequest], error) {
	if f.listRequestsFn == nil {
		return nil, errNotStubbed
	}
	return f.listRequestsFn(ctx, token, q)
}

func (f *fakeAdminAPI) CreateDonationRequest(ctx context.Context, token string, in dto.CreateDonationRequest) error {
	if f.createRequestFn == nil {
		return errNotStubbed
	}
	return f.createRequestFn(ctx, token, in)
}

func (f *fakeAdminAPI) ApproveDonationRequest(ctx context.Context, token, id, notes string) error {
	if f.approveFn == nil {
		return errNotStubbed
	}
	return f.approveFn(ctx, token, id, notes)
}

func (f *fakeAdminAPI) RejectDonationRequest(ctx context.Context, token, id, reason string) error {
	if f.rejectFn == nil {
		return errNotStubbed
	}
	return f.rejectFn(ctx, token, id, reason)
}

func (f *fakeAdminAPI) FindSuitableDonors(ctx context.Context, token, id string, limit int) ([]dto.Donor, error) {
	if f.findDonorsFn == nil {
		return nil, errNotStubbed
	}
	return f.findDonorsFn(ctx, token, id, limit)
}

func (f *fakeAdminAPI) NotifyDonors(ctx context.Context, token, id string) (string, error) {
	if f.notifyFn == nil {
		return "", errNotStubbed
	}
	return f.notifyFn(ctx, token, id)
}

func (f *fakeAdminAPI) ListDonations(ctx context.Context, token string, q dto.PageQuery) (*dto.Envelope[[]dto.Donation], error) {
	if f.listDonationsFn == nil {
		return nil, errNotStubbed
	}
	return f.listDonationsFn(ctx, token, q)
}
