package service

import (
	"testing"

	"academy_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEnrolledIn(t *testing.T) {
	free := &model.Course{IsPaid: model.PricingFree}
	paid := &model.Course{IsPaid: model.PricingPaid}

	cases := []struct {
		name   string
		course *model.Course
		p      *model.Participation
		want   bool
	}{
		{"无参与记录", free, nil, false},
		{"免费课有记录即算报名", free, &model.Participation{Status: model.ParticipationPending, PaymentStatus: model.PaymentUnpaid}, true},
		{"免费课与支付状态无关", free, &model.Participation{Status: model.ParticipationEnrolled, PaymentStatus: model.PaymentFailed}, true},
		{"付费课未支付不算报名", paid, &model.Participation{Status: model.ParticipationEnrolled, PaymentStatus: model.PaymentUnpaid}, false},
		{"付费课支付失败不算报名", paid, &model.Participation{Status: model.ParticipationPaid, PaymentStatus: model.PaymentFailed}, false},
		{"付费课已支付算报名", paid, &model.Participation{Status: model.ParticipationPaid, PaymentStatus: model.PaymentPaid}, true},
		{"课程缺失", nil, &model.Participation{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EnrolledIn(tc.course, tc.p))
		})
	}
}
