package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"Employee-Attendance-Management/config"
	"Employee-Attendance-Management/models"
)

// ErrDuplicateRecord is returned when an insert hits the unique
// (employee_id, date) index, i.e. the day already has a record.
var ErrDuplicateRecord = errors.New("attendance record already exists for this employee and date")

type AttendanceRepository interface {
	CreateAttendance(ctx context.Context, attendance *models.Attendance) error
	FindAttendanceByEmployeeAndDate(ctx context.Context, employeeID primitive.ObjectID, date string) (*models.Attendance, error)
	UpdateAttendanceCheckout(ctx context.Context, attendanceID primitive.ObjectID, checkOut time.Time, totalHours float64) error
	FindAttendanceByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error)
	FindAttendanceByEmployeeInRange(ctx context.Context, employeeID primitive.ObjectID, from, to string) ([]models.Attendance, error)
	FindAttendanceWithHoursInRange(ctx context.Context, from, to string) ([]models.Attendance, error)
	CountPresentByDate(ctx context.Context, date string) (int64, error)
	FindRecentWithUserDetails(ctx context.Context, limit int64) ([]models.AttendanceWithUser, error)
	GetAllAttendancesWithUserDetails(ctx context.Context) ([]models.AttendanceWithUser, error)
	DeleteAttendanceByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) (int64, error)
}

type attendanceRepository struct {
	attendanceCollection *mongo.Collection
}

func NewAttendanceRepository() AttendanceRepository {
	return &attendanceRepository{
		attendanceCollection: config.GetCollection(config.AttendanceCollection),
	}
}

func (r *attendanceRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	attendance.CreatedAt = time.Now()
	attendance.UpdatedAt = attendance.CreatedAt

	res, err := r.attendanceCollection.InsertOne(ctx, attendance)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRecord
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		attendance.ID = oid
	}
	return nil
}

// FindAttendanceByEmployeeAndDate returns (nil, nil) when no record
// exists for the pair; a missing row means the day is Absent.
func (r *attendanceRepository) FindAttendanceByEmployeeAndDate(ctx context.Context, employeeID primitive.ObjectID, date string) (*models.Attendance, error) {
	var attendance models.Attendance
	filter := bson.M{"employee_id": employeeID, "date": date}

	err := r.attendanceCollection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by employee and date: %w", err)
	}
	return &attendance, nil
}

func (r *attendanceRepository) UpdateAttendanceCheckout(ctx context.Context, attendanceID primitive.ObjectID, checkOut time.Time, totalHours float64) error {
	update := bson.M{
		"$set": bson.M{
			"check_out":   checkOut,
			"total_hours": totalHours,
			"updated_at":  time.Now(),
		},
	}
	_, err := r.attendanceCollection.UpdateByID(ctx, attendanceID, update)
	if err != nil {
		return fmt.Errorf("failed to update attendance check-out: %w", err)
	}
	return nil
}

func (r *attendanceRepository) FindAttendanceByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) ([]models.Attendance, error) {
	filter := bson.M{"employee_id": employeeID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.attendanceCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance history: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance history: %w", err)
	}

	if len(results) == 0 {
		return []models.Attendance{}, nil
	}
	return results, nil
}

// FindAttendanceByEmployeeInRange fetches one employee's records whose
// date key falls inside [from, to]. YYYY-MM-DD keys compare the same
// way lexicographically and chronologically, so $gte/$lte on strings
// is a correct window query.
func (r *attendanceRepository) FindAttendanceByEmployeeInRange(ctx context.Context, employeeID primitive.ObjectID, from, to string) ([]models.Attendance, error) {
	filter := bson.M{
		"employee_id": employeeID,
		"date":        bson.M{"$gte": from, "$lte": to},
	}

	cursor, err := r.attendanceCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance in range: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance in range: %w", err)
	}
	return results, nil
}

// FindAttendanceWithHoursInRange fetches every record inside [from, to]
// that has recorded hours (total_hours > 0), across all employees.
func (r *attendanceRepository) FindAttendanceWithHoursInRange(ctx context.Context, from, to string) ([]models.Attendance, error) {
	filter := bson.M{
		"date":        bson.M{"$gte": from, "$lte": to},
		"total_hours": bson.M{"$gt": 0},
	}

	cursor, err := r.attendanceCollection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find attendance with hours in range: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.Attendance
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance with hours: %w", err)
	}
	return results, nil
}

func (r *attendanceRepository) CountPresentByDate(ctx context.Context, date string) (int64, error) {
	filter := bson.M{
		"date":     date,
		"check_in": bson.M{"$ne": nil},
	}

	count, err := r.attendanceCollection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count present employees: %w", err)
	}
	return count, nil
}

func userLookupStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "employee_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "userDetails"},
		}}},
		{{Key: "$unwind", Value: "$userDetails"}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "employee_id", Value: 1},
			{Key: "date", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "total_hours", Value: 1},
			{Key: "status", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "user_name", Value: "$userDetails.name"},
			{Key: "user_department", Value: "$userDetails.department"},
		}}},
	}
}

// FindRecentWithUserDetails returns the newest records system-wide by
// creation time, joined with the owning employee's name.
func (r *attendanceRepository) FindRecentWithUserDetails(ctx context.Context, limit int64) ([]models.AttendanceWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}
	pipeline = append(pipeline, userLookupStages()...)

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate recent activity: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithUser
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode recent activity: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceWithUser{}, nil
	}
	return results, nil
}

func (r *attendanceRepository) GetAllAttendancesWithUserDetails(ctx context.Context) ([]models.AttendanceWithUser, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}}},
	}
	pipeline = append(pipeline, userLookupStages()...)

	cursor, err := r.attendanceCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance with user details: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.AttendanceWithUser
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance with user details: %w", err)
	}

	if len(results) == 0 {
		return []models.AttendanceWithUser{}, nil
	}
	return results, nil
}

// DeleteAttendanceByEmployeeID removes every record owned by the
// employee. Used as a cascade when the employee is deleted.
func (r *attendanceRepository) DeleteAttendanceByEmployeeID(ctx context.Context, employeeID primitive.ObjectID) (int64, error) {
	res, err := r.attendanceCollection.DeleteMany(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance records: %w", err)
	}
	return res.DeletedCount, nil
}
