package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/maxton76/stall-bokning-sub012/internal/domain"
)

var commonFirstNames = []string{
	"Anna", "Erik", "Maria", "Lars", "Eva", "Karl", "Karin", "Johan", "Sara", "Anders",
	"Emma", "Nils", "Elin", "Olof", "Linnea", "Gustav", "Ida", "Per", "Astrid", "Henrik",
}
var commonLastNames = []string{
	"Andersson", "Johansson", "Karlsson", "Nilsson", "Eriksson", "Larsson", "Olsson",
	"Persson", "Svensson", "Gustafsson", "Pettersson", "Jonsson", "Lindberg", "Lindqvist",
	"Axelsson", "Berg", "Lundgren", "Hansson", "Bengtsson", "Sandberg",
}

func GenerateRandomMemberName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var digits = "0123456789"

func GenerateEmailFromName(fullName string) string {
	email := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		email += string(digits[rand.Intn(len(digits))])
	}

	return email + "@example.se"
}

// ShiftSlot 马厩一天中的固定值班时段
type ShiftSlot struct {
	StartTime  string
	EndTime    string
	BasePoints int32
}

// 早饲、午间放牧和晚饲三个时段，晚饲最辛苦所以积分更高
var ShiftSlots = []ShiftSlot{
	{StartTime: "06:00:00", EndTime: "08:00:00", BasePoints: 10},
	{StartTime: "11:00:00", EndTime: "13:00:00", BasePoints: 5},
	{StartTime: "17:00:00", EndTime: "19:00:00", BasePoints: 15},
}

// GenerateRandomRestrictions 随机生成 0 到 2 个 never 限制
// 每个限制直接套用某个值班时段，这样测试数据才会真的命中过滤逻辑
func GenerateRandomRestrictions() []domain.AvailabilityRestriction {
	n := rand.Intn(3)
	restrictions := make([]domain.AvailabilityRestriction, 0, n)

	for i := 0; i < n; i++ {
		slot := ShiftSlots[rand.Intn(len(ShiftSlots))]
		restrictions = append(restrictions, domain.AvailabilityRestriction{
			Weekday:   int32(rand.Intn(7) + 1),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Kind:      domain.RestrictionNever,
		})
	}

	return restrictions
}

// GenerateRandomLimits 大约一半的成员会设置每周班次上限
func GenerateRandomLimits() domain.MemberLimits {
	limits := domain.MemberLimits{}

	if rand.Intn(2) == 0 {
		maxPerWeek := int32(rand.Intn(3) + 2) // 2~4
		limits.MaxShiftsPerWeek = &maxPerWeek
	}
	if rand.Intn(4) == 0 {
		maxPerMonth := int32(rand.Intn(6) + 8) // 8~13
		limits.MaxShiftsPerMonth = &maxPerMonth
	}

	return limits
}

func GenerateRandomMember(stableID int64) *domain.Member {
	fullName := GenerateRandomMemberName()

	return &domain.Member{
		StableID:     stableID,
		DisplayName:  fullName,
		Email:        GenerateEmailFromName(fullName),
		IsActive:     true,
		Restrictions: GenerateRandomRestrictions(),
		Limits:       GenerateRandomLimits(),
	}
}

func GenerateRandomID(letterLength int, digitLength int) string {
	letters := []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(len(letters))]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

func GenerateScheduleName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, GenerateRandomID(3, 3))
}
