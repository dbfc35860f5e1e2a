package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking-backend/models"
	"hotel-booking-backend/services"
)

type RoomController struct {
	RoomSvc *services.RoomService
}

func NewRoomController(svc *services.RoomService) *RoomController {
	return &RoomController{RoomSvc: svc}
}

// GET /api/rooms
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	filter := services.RoomFilter{
		RoomType:   models.RoomType(c.Query("type")),
		NumberLike: c.Query("number"),
	}

	rooms, err := ctrl.RoomSvc.GetAll(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// POST /api/rooms
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload services.CreateRoomInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "details": err.Error()})
		return
	}

	room, err := ctrl.RoomSvc.Create(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GET /api/rooms/:roomNumber
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	room, err := ctrl.RoomSvc.GetByNumber(c.Param("roomNumber"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// PUT /api/rooms/:roomNumber — room number itself is immutable.
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	var payload services.UpdateRoomInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields", "details": err.Error()})
		return
	}

	room, err := ctrl.RoomSvc.Update(c.Param("roomNumber"), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /api/rooms/:roomNumber
func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	if err := ctrl.RoomSvc.Delete(c.Param("roomNumber")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted successfully"})
}
